package api

import (
	"github.com/gin-gonic/gin"

	"opsCommandCenter/internal/assistant"
	"opsCommandCenter/internal/auth"
	"opsCommandCenter/internal/config"
	"opsCommandCenter/models"
	"opsCommandCenter/repository"
)

// Handlers bundles everything the HTTP layer needs.
type Handlers struct {
	Cfg           *config.Config
	Authenticator *auth.Authenticator
	Events        *repository.Repository[models.SecurityEvent]
	Assets        *repository.Repository[models.DataAsset]
	Requests      *repository.Repository[models.ITRequest]
	Assistant     *assistant.Client
}

// NewRouter wires all dashboard routes.
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	v1.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	v1.POST("/session", h.SignIn)

	authed := v1.Group("")
	authed.Use(RequireSession(cfg.Auth.SessionSecret))
	{
		authed.GET("/session", h.WhoAmI)
		authed.DELETE("/session", h.SignOut)

		authed.GET("/overview", h.Overview)

		authed.GET("/events", h.ListEvents)
		authed.POST("/events", h.CreateEvent)
		authed.PATCH("/events/:key/state", h.UpdateEventState)

		authed.GET("/assets", h.ListAssets)
		authed.POST("/assets", h.CreateAsset)
		authed.PATCH("/assets/:key/steward", h.UpdateAssetSteward)

		authed.GET("/requests", h.ListRequests)
		authed.POST("/requests", h.CreateRequest)
		authed.PATCH("/requests/:key/phase", h.UpdateRequestPhase)

		authed.POST("/assistant", h.AskAssistant)
	}

	return r
}
