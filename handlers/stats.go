package handlers

import (
	"net/http"
	"time"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/scoring"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	activitiesRepo *repository.ActivitiesRepository
	challenge      *initializers.ChallengeConfig
}

func NewStatsHandler(ar *repository.ActivitiesRepository, challenge *initializers.ChallengeConfig) *StatsHandler {
	return &StatsHandler{activitiesRepo: ar, challenge: challenge}
}

// GetUserStats returns the session user's dashboard numbers: totals per
// discipline, active days, longest efforts and ranks.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID := c.GetString("userId")
	now := time.Now()

	list, err := h.activitiesRepo.ListSince(listWindowStart(h.challenge, now))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	raws, profiles := toEngineInput(list)
	res, err := scoring.Evaluate(raws, profiles, h.challenge.ScoringConfig(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	stats := scoring.ComputeUserStats(userID, res, h.challenge.Location())
	c.JSON(http.StatusOK, types.NewSuccessResponse(stats))
}
