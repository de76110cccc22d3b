package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/refresh"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

type StravaHandler struct {
	profilesRepo *repository.ProfilesRepository
	service      *refresh.Service
	oauth        *oauth2.Config
	challenge    *initializers.ChallengeConfig
	appURL       string
	jwtSecret    string
}

func NewStravaHandler(pr *repository.ProfilesRepository, svc *refresh.Service, oauth *oauth2.Config, challenge *initializers.ChallengeConfig, appURL, jwtSecret string) *StravaHandler {
	return &StravaHandler{
		profilesRepo: pr,
		service:      svc,
		oauth:        oauth,
		challenge:    challenge,
		appURL:       appURL,
		jwtSecret:    jwtSecret,
	}
}

// Connect redirects the session user to Strava's authorize page. The user
// ID rides in the state parameter so the callback knows whose tokens these
// are.
func (h *StravaHandler) Connect(c *gin.Context) {
	userID := c.GetString("userId")
	url := h.oauth.AuthCodeURL(userID, oauth2.SetAuthURLParam("approval_prompt", "auto"))
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback finishes the OAuth dance: exchanges the code, stores the tokens,
// runs the initial import and sends the user back to the app.
func (h *StravaHandler) Callback(c *gin.Context) {
	if errMsg := c.Query("error"); errMsg != "" {
		// User declined on Strava's side.
		c.Redirect(http.StatusTemporaryRedirect, h.appURL+"?strava=denied")
		return
	}
	code := c.Query("code")
	userID := c.Query("state")
	if code == "" || userID == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Missing code or state"))
		return
	}

	profile, err := h.profilesRepo.GetProfileByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Profile not found"))
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, types.NewErrorResponse(types.ErrorCodeUpstream, "Strava token exchange failed"))
		return
	}
	if err := h.profilesRepo.SaveStravaTokens(userID, token.AccessToken, token.RefreshToken, token.Expiry.Unix()); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	// Initial import. A failure here is not fatal; the nightly sweep will
	// catch up.
	fresh, err := h.profilesRepo.GetProfileByUserID(userID)
	if err == nil && fresh != nil {
		if _, err := h.service.RefreshUser(c.Request.Context(), *fresh, h.challenge.ChallengeStart); err != nil {
			slog.Error("initial import failed", "userId", userID, "err", err)
		}
	}

	if err := SetSessionCookie(c, h.jwtSecret, userID); err != nil {
		slog.Error("setting session cookie failed", "userId", userID, "err", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, h.appURL+"?strava=connected")
}

// RefreshUser re-imports the session user's own activities. Once the freeze
// cutoff has passed, only activities from the cutoff onward are pulled so
// reviewed history stays untouched; after the competition end the endpoint
// refuses entirely.
func (h *StravaHandler) RefreshUser(c *gin.Context) {
	userID := c.GetString("userId")
	now := time.Now()
	if !h.challenge.CompetitionEnd.IsZero() && now.After(h.challenge.CompetitionEnd) {
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, "The competition has ended"))
		return
	}

	profile, err := h.profilesRepo.GetProfileByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if profile == nil || !profile.StravaConnected {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Strava is not connected"))
		return
	}

	after := h.challenge.ChallengeStart
	if !h.challenge.FreezeCutoff.IsZero() && now.After(h.challenge.FreezeCutoff) {
		after = h.challenge.FreezeCutoff
	}
	written, err := h.service.RefreshUser(c.Request.Context(), *profile, after)
	if err != nil {
		c.JSON(http.StatusBadGateway, types.NewErrorResponse(types.ErrorCodeUpstream, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"imported": written, "since": after.Format(time.RFC3339)}))
}

// RefreshAll is the admin sweep over every connected user.
func (h *StravaHandler) RefreshAll(c *gin.Context) {
	stats, err := h.service.RefreshAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	slog.Info("manual refresh complete",
		"usersScanned", stats.UsersScanned, "refreshed", stats.Refreshed)
	c.JSON(http.StatusOK, types.NewSuccessResponse(stats))
}
