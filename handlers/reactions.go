package handlers

import (
	"net/http"
	"strconv"

	"github.com/gokuljawahar87/move-more/pkg/events"
	"github.com/gokuljawahar87/move-more/pkg/notify"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
)

type ReactionsHandler struct {
	reactionsRepo  *repository.ReactionsRepository
	activitiesRepo *repository.ActivitiesRepository
	notifier       notify.Notifier
}

func NewReactionsHandler(rr *repository.ReactionsRepository, ar *repository.ActivitiesRepository, n notify.Notifier) *ReactionsHandler {
	return &ReactionsHandler{reactionsRepo: rr, activitiesRepo: ar, notifier: n}
}

// ToggleReaction adds, switches or removes the session user's reaction on
// an activity. New reactions push a realtime event to the activity owner.
func (h *ReactionsHandler) ToggleReaction(c *gin.Context) {
	userID := c.GetString("userId")
	var req struct {
		ActivityID int    `json:"activity_id"`
		Type       string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ActivityID == 0 || req.Type == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing activity_id or type"))
		return
	}

	activity, err := h.activitiesRepo.GetByID(req.ActivityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if activity == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Activity not found"))
		return
	}

	action, err := h.reactionsRepo.Toggle(req.ActivityID, userID, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if action != repository.ReactionRemoved && h.notifier != nil && activity.UserID != userID {
		h.notifier.NotifyUser(activity.UserID, events.ReactionCreated{
			Type:         "reaction_created",
			ActivityID:   req.ActivityID,
			ReactorID:    userID,
			ReactionType: req.Type,
		})
	}

	counts, err := h.reactionsRepo.Counts(req.ActivityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"action": action, "counts": counts}))
}

// GetReactions returns reaction counts by type for one activity.
func (h *ReactionsHandler) GetReactions(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("activity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid activity_id"))
		return
	}
	counts, err := h.reactionsRepo.Counts(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"activity_id": id, "counts": counts}))
}
