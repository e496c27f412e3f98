// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, String, Status)
// - Middleware data (c.Get/c.Set)
//
// Handlers are plain methods on one struct (Handler) that holds the shared
// dependencies: the session store and the task runner.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/session"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

// Version is reported by the health check.
const Version = "1.0.0"

// TaskRunner runs one analysis task on a document's text.
// *tasks.Dispatcher is the real implementation.
type TaskRunner interface {
	Run(ctx context.Context, task tasks.Task, text string) (*tasks.Outcome, error)
}

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Instead of global
// variables or service locators, we pass dependencies explicitly.
// Tests build a Handler around a fake TaskRunner.
type Handler struct {
	Sessions      *session.Store
	Runner        TaskRunner
	JWTSecret     string
	MaxUploadSize int64
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(store *session.Store, runner TaskRunner, jwtSecret string, maxUploadSize int64) *Handler {
	return &Handler{
		Sessions:      store,
		Runner:        runner,
		JWTSecret:     jwtSecret,
		MaxUploadSize: maxUploadSize,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if err := h.Sessions.HealthCheck(ctx); err != nil {
		storeStatus = "unhealthy: " + err.Error()
	}

	active, err := h.Sessions.Count()
	if err != nil {
		storeStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  Version,
		Sessions: storeStatus,
		Active:   active,
		Tasks:    len(tasks.Labels),
	})
}
