package http

import (
	"errors"
	"net/http"

	"github.com/waveswap/waveswap/internal/adapter"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/service"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidAddress:      http.StatusBadRequest,
	service.ErrInvalidAmount:       http.StatusBadRequest,
	service.ErrInvalidSlippage:     http.StatusBadRequest,
	service.ErrNotCancellable:      http.StatusBadRequest,
	service.ErrNotExecutable:       http.StatusBadRequest,
	service.ErrMathOverflow:        http.StatusBadRequest,

	service.ErrNotSwapOwner:            http.StatusForbidden,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrSwapNotFound:          http.StatusNotFound,
	store.ErrTokenMetadataNotFound: http.StatusNotFound,
	store.ErrSessionNotFound:       http.StatusUnauthorized,

	adapter.ErrNoRouteFound:        http.StatusNotFound,
	adapter.ErrUpstreamUnavailable: http.StatusBadGateway,
	adapter.ErrUpstreamRejected:    http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusBadGateway:
		return "bad_gateway"
	default:
		return "internal_error"
	}
}

// respondError maps a service/store/adapter error to its HTTP status and
// writes the uniform JSON error body. Unclassified errors become 500 with a
// generic message so internals never leak to API clients.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unclassified handler error")
		message = "internal server error"
	}

	_, _ = utils.WriteJSON(w, models.ErrorResponse{
		Error:   codeFromStatus(status),
		Message: message,
	}, status)
}

// respondBadRequest writes a 400 for malformed request bodies and parameters.
func respondBadRequest(w http.ResponseWriter, message string) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{
		Error:   codeFromStatus(http.StatusBadRequest),
		Message: message,
	}, http.StatusBadRequest)
}
