package http

import (
	"net"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

// walletHeader lets unauthenticated callers identify their wallet so the
// limiter keys on the wallet instead of the client IP.
const walletHeader = "X-Wallet-Address"

// withRateLimit enforces the fixed-window request ceiling per
// (caller, path) pair. The caller key is the authenticated wallet address
// when present, the wallet header otherwise, and the client IP as a last
// resort. A limiter storage failure lets the request through: throttling is
// protection, not an availability dependency.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		caller := callerKey(r)

		allowed, err := h.services.RateLimitService.Allow(r.Context(), caller, r.URL.Path)
		if err != nil {
			log.Err(err).Str("caller", caller).Msg("rate limiter unavailable, letting request through")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			log.Info().Str("caller", caller).Str("path", r.URL.Path).Msg("rate limit exceeded")
			_, _ = utils.WriteJSON(w, models.ErrorResponse{
				Error:   codeFromStatus(http.StatusTooManyRequests),
				Message: "rate limit exceeded, retry later",
			}, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func callerKey(r *http.Request) string {
	if address, ok := utils.GetUserAddressFromContext(r.Context()); ok && address != "" {
		return address
	}
	if wallet := r.Header.Get(walletHeader); wallet != "" {
		return wallet
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
