package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/kraalhub/notifier/internal/api/handlers/notification"
	"github.com/kraalhub/notifier/internal/api/respond"
	"github.com/kraalhub/notifier/internal/middlewares"
)

func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")
	{
		api.GET("/health", func(c *ginext.Context) {
			respond.OK(c.Writer, "ok")
		})

		api.POST("/notifications", handler.Enqueue)
		api.POST("/notifications/run", handler.Run)
		api.POST("/notifications/cleanup", handler.Cleanup)
		api.GET("/notifications/:id", handler.GetJob)

		api.GET("/users/:id/preferences", handler.GetPreferences)
		api.PUT("/users/:id/preferences", handler.UpdatePreferences)

		// Registered for GET as well so the plain link in email footers works.
		api.GET("/unsubscribe/:token", handler.Unsubscribe)
		api.POST("/unsubscribe/:token", handler.Unsubscribe)
	}

	return e
}
