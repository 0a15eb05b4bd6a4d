package routes

import (
	"time"

	"github.com/cyberes/diagnostico-relay/config"
	"github.com/cyberes/diagnostico-relay/handler"
	"github.com/cyberes/diagnostico-relay/middleware"
	"github.com/cyberes/diagnostico-relay/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the engine serving the form, the relay endpoint and the
// authenticated user route.
func SetupRoutes(cfg *config.Config, relayHandler *handler.RelayHandler, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), cors.New(corsConfig(cfg.CORS)))
	r.SetHTMLTemplate(web.Templates())

	r.GET("/", web.Index(cfg.APIURL))
	r.GET("/health", handler.Health)

	api := r.Group("/api")
	{
		api.POST("/prueba-ia", relayHandler.Diagnose)

		authed := api.Group("")
		authed.Use(middleware.Auth(cfg.Auth.JWTSecret))
		{
			authed.GET("/user", handler.CurrentUser)
		}
	}

	return r
}

func corsConfig(c config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			out.AllowAllOrigins = true
			return out
		}
	}
	if len(c.AllowOrigins) == 0 {
		out.AllowAllOrigins = true
		return out
	}
	out.AllowOrigins = c.AllowOrigins
	return out
}
