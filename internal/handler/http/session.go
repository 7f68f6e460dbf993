package http

import (
	"encoding/json"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createSession").Msg("invalid JSON was passed")
		respondBadRequest(w, "invalid JSON was passed")
		return
	}

	resp, err := h.services.AuthService.CreateSession(r.Context(), req.UserAddress)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSession").Msg("error creating session")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

// revokeSession deletes the session row behind the presented bearer token so
// the token stops validating even before its JWT expiry.
func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		unauthorized(w, ErrEmptyAuthorizationHeader.Error())
		return
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		unauthorized(w, ErrInvalidAuthorizationHeader.Error())
		return
	}

	if err = h.services.AuthService.RevokeSession(r.Context(), tokenString); err != nil {
		log.Err(err).Str("func", "*Handler.revokeSession").Msg("error revoking session")
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
