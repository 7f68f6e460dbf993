package http

import (
	"encoding/json"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.quote").Msg("invalid JSON was passed")
		respondBadRequest(w, "invalid JSON was passed")
		return
	}

	quote, err := h.services.QuoteService.GetQuote(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.quote").Msg("error getting quote")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, quote, http.StatusOK)
}

func (h *Handler) invalidateQuoteCache(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	inputToken := r.URL.Query().Get("input_token")
	outputToken := r.URL.Query().Get("output_token")

	deleted, err := h.services.QuoteService.InvalidateCache(r.Context(), inputToken, outputToken)
	if err != nil {
		log.Err(err).Str("func", "*Handler.invalidateQuoteCache").Msg("error invalidating quote cache")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]int64{"deleted": deleted}, http.StatusOK)
}
