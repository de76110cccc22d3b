package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
)

type ProfilesHandler struct {
	profilesRepo  *repository.ProfilesRepository
	employeesRepo *repository.EmployeesRepository
	jwtSecret     string
}

func NewProfilesHandler(pr *repository.ProfilesRepository, er *repository.EmployeesRepository, jwtSecret string) *ProfilesHandler {
	return &ProfilesHandler{profilesRepo: pr, employeesRepo: er, jwtSecret: jwtSecret}
}

// Register creates or updates a profile. Team and gender come from the
// employee roster, never from the request, so users cannot assign
// themselves to a team. Registration also starts the session.
func (h *ProfilesHandler) Register(c *gin.Context) {
	var req struct {
		UserID    string `json:"user_id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing user_id"))
		return
	}

	emp, err := h.employeesRepo.GetEmployee(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	var team, gender *string
	if emp != nil {
		team = emp.Team
		gender = emp.Gender
	} else {
		slog.Warn("registration without roster entry", "userId", req.UserID)
	}

	profile, err := h.profilesRepo.UpsertProfile(req.UserID, req.FirstName, req.LastName, team, gender)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if err := SetSessionCookie(c, h.jwtSecret, req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "Failed to start session"))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(profile))
}

// RestoreSession re-issues the session cookie for a known user, used by the
// client after cookie loss.
func (h *ProfilesHandler) RestoreSession(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing user_id"))
		return
	}
	profile, err := h.profilesRepo.GetProfileByUserID(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Profile not found"))
		return
	}
	if err := SetSessionCookie(c, h.jwtSecret, req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "Failed to start session"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(profile))
}

// GetProfile returns the session user's profile.
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userId")
	profile, err := h.profilesRepo.GetProfileByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Profile not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(profile))
}

// GetTeams lists the distinct registered team names.
func (h *ProfilesHandler) GetTeams(c *gin.Context) {
	teams, err := h.profilesRepo.ListTeams()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if teams == nil {
		teams = []string{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(teams))
}
