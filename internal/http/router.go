package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/http/middleware"
	"github.com/nurpe/procurement/internal/metrics"
)

type RouterConfig struct {
	Environment string
	CORSOrigins []string
	Log         zerolog.Logger
	Metrics     *metrics.Metrics
}

func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	if strings.EqualFold(cfg.Environment, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Log))
	router.Use(middleware.Metrics(cfg.Metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	handler.Register(router)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
