package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/service"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ValidateToken], and on success stores the
// authenticated wallet address in the request context under
// [utils.UserAddressCtxKey] before delegating to the next handler.
//
// Requests are rejected with 401 when the header is absent or malformed, the
// token fails signature/expiry checks, or the backing session row is gone.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			unauthorized(w, ErrEmptyAuthorizationHeader.Error())
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			unauthorized(w, ErrInvalidAuthorizationHeader.Error())
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ValidateToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
				log.Err(err).Msg("token rejected")
			default:
				log.Err(err).Msg("error occurred during token validation")
			}
			unauthorized(w, service.ErrTokenIsExpiredOrInvalid.Error())
			return
		}

		// Store the wallet address in the context so downstream handlers can
		// retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserAddressCtxKey, token.UserAddress)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{
		Error:   codeFromStatus(http.StatusUnauthorized),
		Message: message,
	}, http.StatusUnauthorized)
}
