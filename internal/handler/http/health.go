package http

import (
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
)

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.pinger.PingContext(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.healthz").Msg("database ping failed")
		_, _ = utils.WriteJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
