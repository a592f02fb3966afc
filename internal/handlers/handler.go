package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"profilevault/internal/logger"
	"profilevault/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Session cookie name. The cookie is HttpOnly and SameSite=Lax; not Secure,
// the app serves plain HTTP.
const sessionCookieName = "pv_session"

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/health", h.health)

	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)

	// Protected pages: the session gate runs before anything else.
	protected := router.Group("/", h.sessionGate)
	{
		protected.GET("/dashboard", h.dashboard)
		protected.POST("/update-profile", h.updateProfile)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// internalError hides store/cipher failures behind a generic response. The
// real error goes to the log only, never to the client.
func (h *Handler) internalError(c *gin.Context, where string, err error) {
	if h.log != nil {
		h.log.Errorw("request failed", "where", where, "err", err)
	}
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
	c.Abort()
}
