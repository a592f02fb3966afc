package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"profilevault/internal/models"
	"profilevault/internal/repository"
	"profilevault/internal/service"
)

// dashboardData feeds the dashboard template.
type dashboardData struct {
	Profile      service.ProfileView
	ErrorMessage string
	Events       []models.AuditEvent
}

func (h *Handler) dashboard(c *gin.Context) {
	h.renderDashboard(c, currentUserID(c), "")
}

// updateProfile is the end of the pipeline: the gate already ran, so this
// validates the raw form input, then sanitizes, encrypts and persists.
func (h *Handler) updateProfile(c *gin.Context) {
	userID := currentUserID(c)
	input := service.ProfileInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Bio:   c.PostForm("bio"),
	}

	if err := h.services.Update(userID, input); err != nil {
		var valErr *service.ValidationError
		switch {
		case errors.As(err, &valErr):
			// Re-render with the current persisted data and the joined
			// messages; the store was not touched.
			h.renderDashboard(c, userID, valErr.Error())
		case errors.Is(err, repository.ErrUserNotFound):
			c.String(http.StatusNotFound, "Profile not found.")
		default:
			h.internalError(c, "update-profile", err)
		}
		return
	}

	h.services.Record(c.Request.Context(), models.EventProfileUpdated, userID, "")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) renderDashboard(c *gin.Context, userID int, errorMessage string) {
	profile, err := h.services.View(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.String(http.StatusNotFound, "Profile not found.")
			return
		}
		h.internalError(c, "dashboard", err)
		return
	}

	events, err := h.services.Recent(c.Request.Context(), userID)
	if err != nil {
		// Activity is auxiliary; render the page without it.
		if h.log != nil {
			h.log.Warnw("loading recent activity failed", "user_id", userID, "err", err)
		}
		events = nil
	}

	c.HTML(http.StatusOK, "dashboard.html", dashboardData{
		Profile:      profile,
		ErrorMessage: errorMessage,
		Events:       events,
	})
}
