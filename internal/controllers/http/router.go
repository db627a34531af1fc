package http

import (
	"github.com/gin-gonic/gin"

	"sales-service/internal/platform/logger"
)

type RouterConfig struct {
	Handler     *Handler
	Log         *logger.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery(cfg.Log))
	r.Use(RequestLogger(cfg.Log))
	r.Use(CORS(cfg.CORSOrigins))

	r.GET("/healthcheck", func(c *gin.Context) {
		respondOK(c, gin.H{"status": "ok"})
	})
	if cfg.Handler != nil {
		cfg.Handler.RegisterRoutes(r)
	}
	return r
}
