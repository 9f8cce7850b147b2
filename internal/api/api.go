package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hmshaban/jard-backend/internal/api/handlers"
	"github.com/hmshaban/jard-backend/internal/api/middleware"
	"github.com/hmshaban/jard-backend/internal/service"
)

func NewRouter(manager *service.RunManager, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if manager != nil {
		reconHandler := handlers.NewReconHandler(manager)
		reconGroup := apiGroup.Group("/recon")
		{
			reconGroup.POST("/workbooks", reconHandler.UploadWorkbook)
			reconGroup.GET("/runs", reconHandler.ListRuns)
			reconGroup.GET("/runs/:id", reconHandler.GetRun)
			reconGroup.POST("/runs/:id/cancel", reconHandler.CancelRun)
			reconGroup.GET("/runs/:id/warnings", reconHandler.GetWarnings)
			reconGroup.GET("/runs/:id/reports", reconHandler.ListReports)
			reconGroup.GET("/runs/:id/reports/:name", reconHandler.GetReport)
			reconGroup.GET("/runs/:id/export", reconHandler.ExportWorkbook)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
