// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/handlers"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/middleware"
)

// Setup creates and configures the Gin router with all routes.
func Setup(h *handlers.Handler, rateLimiter *middleware.RateLimiter, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	// --- Public Routes (no session required) ---
	r.GET("/api/v1/health", h.HealthCheck)
	r.GET("/api/v1/tasks", h.ListTasks)

	// API Documentation
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Upload routes (start a session, or work without one) ---
	uploads := r.Group("/api/v1")
	uploads.Use(rateLimiter.RateLimit())
	{
		// A valid token replaces that session's document
		uploads.POST("/documents", middleware.OptionalSession(h.JWTSecret), h.UploadDocument)
		uploads.POST("/analyze", h.Analyze)
	}

	// --- Session Routes (Bearer token from the upload response) ---
	document := r.Group("/api/v1/document")
	document.Use(middleware.SessionAuth(h.JWTSecret))
	document.Use(rateLimiter.RateLimit())
	{
		document.GET("", h.GetDocument)
		document.DELETE("", h.DeleteDocument)
		document.POST("/tasks", h.RunTask)
		document.GET("/speech.mp3", h.DownloadSpeech)
		document.GET("/wordcloud.png", h.DownloadWordCloud)
	}

	return r
}
