package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
)

func (h *Handler) listTokens(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tokens, err := h.services.TokenService.ListTokens(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTokens").Msg("error listing tokens")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, tokens, http.StatusOK)
}

func (h *Handler) getToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	mint := chi.URLParam(r, "mint")

	token, err := h.services.TokenService.GetToken(r.Context(), mint)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getToken").Str("mint", mint).Msg("error getting token")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, token, http.StatusOK)
}
