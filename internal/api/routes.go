package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(router *gin.Engine, d Dashboard, origins []string, logger *logrus.Logger) {
	handler := NewHandler(d, logger)

	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/overview", handler.GetOverview)
		api.GET("/worth", handler.GetWorth)
		api.GET("/profitability", handler.GetProfitability)
		api.GET("/ranking", handler.GetRanking)
		api.GET("/report", handler.GetReport)
		api.GET("/maps/:layer", handler.GetMapLayer)
		api.POST("/cache/invalidate", handler.InvalidateCache)
	}
}
