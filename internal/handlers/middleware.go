package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// sessionGate admits only requests carrying a valid session cookie. On
// denial it redirects to /login and stops the chain: no store access, no
// validation, no side effects happen for an unauthenticated request.
func (h *Handler) sessionGate(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	sess, err := h.services.Authenticate(token)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(userIDKey, sess.UserID)
	c.Next()
}

// currentUserID reads the id the gate stored in the request context.
func currentUserID(c *gin.Context) int {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(int)
	return uid
}
