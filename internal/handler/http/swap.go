package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/service"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

func (h *Handler) submitSwap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SwapSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.submitSwap").Msg("invalid JSON was passed")
		respondBadRequest(w, "invalid JSON was passed")
		return
	}

	resp, err := h.services.SwapService.Submit(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.submitSwap").Msg("error submitting swap")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) executeSwap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	intentID := chi.URLParam(r, "intentID")

	var req models.SwapExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.executeSwap").Msg("invalid JSON was passed")
		respondBadRequest(w, "invalid JSON was passed")
		return
	}

	swap, err := h.services.SwapService.Execute(r.Context(), intentID, req.SignedTransaction)
	if err != nil {
		log.Err(err).Str("func", "*Handler.executeSwap").Str("intent_id", intentID).Msg("error executing swap")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, swap, http.StatusOK)
}

func (h *Handler) swapStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	intentID := chi.URLParam(r, "intentID")

	resp, err := h.services.SwapService.GetStatus(r.Context(), intentID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.swapStatus").Str("intent_id", intentID).Msg("error getting swap status")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) cancelSwap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	intentID := chi.URLParam(r, "intentID")

	userAddress, ok := utils.GetUserAddressFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.cancelSwap").Msg("no wallet address in context after auth")
		unauthorized(w, service.ErrTokenIsExpiredOrInvalid.Error())
		return
	}

	swap, err := h.services.SwapService.Cancel(r.Context(), intentID, userAddress)
	if err != nil {
		log.Err(err).Str("func", "*Handler.cancelSwap").Str("intent_id", intentID).Msg("error cancelling swap")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, swap, http.StatusOK)
}

func (h *Handler) swapHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userAddress := chi.URLParam(r, "userAddress")

	query := r.URL.Query()
	limit, err := intQueryParam(query.Get("limit"))
	if err != nil {
		respondBadRequest(w, "limit must be an integer")
		return
	}
	offset, err := intQueryParam(query.Get("offset"))
	if err != nil {
		respondBadRequest(w, "offset must be an integer")
		return
	}

	var status *models.SwapStatus
	if rawStatus := query.Get("status"); rawStatus != "" {
		s := models.SwapStatus(rawStatus)
		status = &s
	}

	resp, err := h.services.SwapService.History(r.Context(), userAddress, limit, offset, status)
	if err != nil {
		log.Err(err).Str("func", "*Handler.swapHistory").Str("user_address", userAddress).Msg("error listing swap history")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

// intQueryParam parses an optional integer query parameter; empty means zero.
func intQueryParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
