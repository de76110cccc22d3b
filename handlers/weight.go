package handlers

import (
	"net/http"
	"time"

	"github.com/gokuljawahar87/move-more/models"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
)

type WeightHandler struct {
	weightsRepo *repository.WeightsRepository
}

func NewWeightHandler(wr *repository.WeightsRepository) *WeightHandler {
	return &WeightHandler{weightsRepo: wr}
}

// LogWeight upserts the session user's weight for a date. One entry per
// user per day; a repeat submission overwrites.
func (h *WeightHandler) LogWeight(c *gin.Context) {
	userID := c.GetString("userId")
	var req struct {
		Date   string  `json:"date"` // YYYY-MM-DD, defaults to today
		Weight float64 `json:"weight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Weight <= 0 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Weight must be positive"))
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid date, expected YYYY-MM-DD"))
		return
	}

	if err := h.weightsRepo.Upsert(userID, req.Date, req.Weight); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(models.WeightLog{UserID: userID, Date: req.Date, Weight: req.Weight}))
}

// GetWeightLog returns the session user's weight entries ordered by date.
func (h *WeightHandler) GetWeightLog(c *gin.Context) {
	userID := c.GetString("userId")
	logs, err := h.weightsRepo.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if logs == nil {
		logs = []models.WeightLog{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(logs))
}
