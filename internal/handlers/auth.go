package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"profilevault/internal/models"
	"profilevault/internal/service"
)

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// login looks the user up by email and establishes a session on a match.
// A miss answers 200 with a plain failure message, not a redirect.
func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")

	token, userID, err := h.services.Login(email)
	if err != nil {
		if errors.Is(err, service.ErrLoginFailed) {
			h.services.Record(c.Request.Context(), models.EventLoginFailed, 0, "unknown email")
			c.String(http.StatusOK, "Login failed. Try again.")
			return
		}
		h.internalError(c, "login", err)
		return
	}

	h.setSessionCookie(c, token)
	h.services.Record(c.Request.Context(), models.EventLogin, userID, "")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// logout destroys the session, if any, and always lands on /login.
func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil {
		if sess, aerr := h.services.Authenticate(token); aerr == nil {
			h.services.Record(c.Request.Context(), models.EventLogout, sess.UserID, "")
		}
		if lerr := h.services.Logout(token); lerr != nil && h.log != nil {
			h.log.Warnw("logout failed", "err", lerr)
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
