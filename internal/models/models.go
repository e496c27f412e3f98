// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// There is no database here: a Document lives in the session store for as
// long as its session does and is gone afterwards.
package models

import (
	"time"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

// Document is the text extracted from one uploaded PDF.
// It is created once per upload and never modified; a new upload replaces it.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Text       string    `json:"text"`
	PageCount  int       `json:"page_count"`
	WordCount  int       `json:"word_count"`
	HasText    bool      `json:"has_text"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// --- Request/Response DTOs (Data Transfer Objects) ---
// Go Pattern: Separate structs for API input/output vs internal types.
// This keeps the API contract independent of how results are computed.

// UploadResponse is returned by POST /api/v1/documents.
// The token identifies the session on every later request
// (Authorization: Bearer <token>).
type UploadResponse struct {
	Document  Document  `json:"document"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RunTaskRequest is the JSON body for POST /api/v1/document/tasks.
// Go Pattern: The `binding:"required"` tag means Gin rejects requests where
// the field is missing. Embedding tasks.Params flattens its fields into the
// same JSON object: {"task": "Encryption", "shift": 5}.
type RunTaskRequest struct {
	Task string `json:"task" form:"task" binding:"required"`
	tasks.Params
}

// OutcomeResponse is a task outcome as sent over the wire. Binary results are
// inlined as data URIs so a browser can show them directly.
type OutcomeResponse struct {
	*tasks.Outcome
	Lines        []string `json:"lines"`
	AudioURI     string   `json:"audio_uri,omitempty"`
	DownloadLink string   `json:"download_link,omitempty"`
	ImageURI     string   `json:"image_uri,omitempty"`
}

// AnalyzeResponse is returned by the one-shot POST /api/v1/analyze.
type AnalyzeResponse struct {
	Document Document        `json:"document"`
	Outcome  OutcomeResponse `json:"outcome"`
}

// TaskListResponse is returned by GET /api/v1/tasks.
type TaskListResponse struct {
	Tasks []tasks.Info `json:"tasks"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions string `json:"sessions"`
	Active   int    `json:"active_sessions"`
	Tasks    int    `json:"tasks"`
}
