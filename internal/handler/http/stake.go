package http

import (
	"encoding/json"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

func (h *Handler) stakeRewards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.StakeRewardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.stakeRewards").Msg("invalid JSON was passed")
		respondBadRequest(w, "invalid JSON was passed")
		return
	}

	projection, err := h.services.StakeService.ProjectRewards(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.stakeRewards").Msg("error projecting stake rewards")
		h.respondError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, projection, http.StatusOK)
}
