package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/models"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/scoring"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
)

type ActivitiesHandler struct {
	activitiesRepo *repository.ActivitiesRepository
	challenge      *initializers.ChallengeConfig
}

func NewActivitiesHandler(ar *repository.ActivitiesRepository, challenge *initializers.ChallengeConfig) *ActivitiesHandler {
	return &ActivitiesHandler{activitiesRepo: ar, challenge: challenge}
}

// GetActivities returns the eligible activity feed, newest first. The
// engine decides eligibility and reclassification, so the feed shows the
// derived category even before a refresh persists it.
func (h *ActivitiesHandler) GetActivities(c *gin.Context) {
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

	eligible := make(map[string]scoring.Activity, len(res.Eligible))
	for _, a := range res.Eligible {
		eligible[a.ID] = a
	}

	feed := make([]models.ActivityWithProfile, 0, len(list))
	for _, row := range list {
		a, ok := eligible[strconv.FormatInt(row.StravaID, 10)]
		if !ok {
			continue
		}
		if a.DerivedCategory != "" {
			d := string(a.DerivedCategory)
			row.DerivedType = &d
		}
		feed = append(feed, row)
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(feed))
}

// GetUserActivities lists the session user's own imported activities,
// eligible or not, so the dashboard can show what the engine excluded.
func (h *ActivitiesHandler) GetUserActivities(c *gin.Context) {
	userID := c.GetString("userId")
	list, err := h.activitiesRepo.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if list == nil {
		list = []models.Activity{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(list))
}

// GetSuspiciousActivities lists activities an admin has flagged invalid.
func (h *ActivitiesHandler) GetSuspiciousActivities(c *gin.Context) {
	list, err := h.activitiesRepo.ListSuspicious()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if list == nil {
		list = []models.ActivityWithProfile{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(list))
}

// SetValidity records an admin verdict on one activity. With lock set the
// verdict survives future refreshes.
func (h *ActivitiesHandler) SetValidity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid activity id"))
		return
	}
	var req struct {
		IsValid *bool `json:"is_valid"`
		Lock    bool  `json:"lock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsValid == nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing is_valid"))
		return
	}

	activity, err := h.activitiesRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if activity == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Activity not found"))
		return
	}
	if err := h.activitiesRepo.SetValidity(id, *req.IsValid, req.Lock); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"id": id, "is_valid": *req.IsValid, "locked": req.Lock}))
}

// ClearDerivedType removes a persisted reclassification so the next refresh
// can re-derive it.
func (h *ActivitiesHandler) ClearDerivedType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid activity id"))
		return
	}
	activity, err := h.activitiesRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if activity == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Activity not found"))
		return
	}
	if err := h.activitiesRepo.ClearDerivedType(id); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"id": id}))
}
