// documents.go handles the session document: upload, read back, discard.
//
// POST   /api/v1/documents  Upload a PDF, start (or continue) a session
// GET    /api/v1/document   The session's current document
// DELETE /api/v1/document   End the session
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/middleware"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
	pdfservice "github.com/Shimizu-Technology/text-analyzer-api/internal/services/pdf"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/session"
)

// UploadDocument extracts the text of an uploaded PDF and makes it the
// session's document.
// POST /api/v1/documents
//
// Accepts multipart file upload with field name "file". A request that
// carries a valid session token replaces that session's document; otherwise
// a new session is started. Either way the response holds a fresh token.
//
// A replacement that can't be parsed still discards the old document, so no
// task runs on it until a valid file is uploaded.
func (h *Handler) UploadDocument(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	doc, err := h.loadDocument(c)
	if err != nil {
		var parseErr *pdfservice.ParseError
		if sessionID != "" && errors.As(err, &parseErr) {
			if err := h.Sessions.Delete(c.Request.Context(), sessionID); err != nil {
				log.Printf("❌ Failed to clear document for session %s: %v", sessionID, err)
			} else {
				log.Printf("🗑️  Session %s document cleared after a failed upload", sessionID)
			}
		}
		return
	}

	if sessionID == "" {
		sessionID = middleware.NewSessionID()
	}

	if err := h.Sessions.Put(c.Request.Context(), sessionID, doc); err != nil {
		log.Printf("❌ Failed to store document for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to store document",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	token, expiresAt, err := middleware.GenerateSessionToken(sessionID, h.JWTSecret, h.Sessions.TTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to issue session token",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusCreated, models.UploadResponse{
		Document:  *doc,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// GetDocument returns the session's current document.
// GET /api/v1/document
func (h *Handler) GetDocument(c *gin.Context) {
	doc, ok := h.sessionDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteDocument discards the session's document. The token stays valid
// until it expires but no longer points at anything.
// DELETE /api/v1/document
func (h *Handler) DeleteDocument(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if err := h.Sessions.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to end session",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	log.Printf("🗑️  Session %s ended", sessionID)
	c.Status(http.StatusNoContent)
}

// loadDocument reads the "file" upload and extracts its text.
// On failure it writes the error response itself and returns the error.
func (h *Handler) loadDocument(c *gin.Context) (*models.Document, error) {
	// Limit request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			h.tooLarge(c)
			return nil, err
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: fmt.Sprintf("No PDF file provided. Upload a file with the field name 'file'. Max size: %dMB.", h.MaxUploadSize>>20),
			Code:    http.StatusBadRequest,
		})
		return nil, err
	}
	defer file.Close()

	// Go Pattern: io.ReadAll reads the entire reader into a byte slice.
	// The pdf library needs random access, so the whole file is in memory.
	data, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			h.tooLarge(c)
			return nil, err
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return nil, err
	}

	result, err := pdfservice.Extract(data)
	if err != nil {
		log.Printf("⚠️  PDF extraction failed for %s: %v", header.Filename, err)

		// A document that can't be parsed blocks everything else, so the
		// client gets a distinct status it can show as a hard error.
		var parseErr *pdfservice.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "document_parse_error",
				Message: "Failed to parse PDF: " + parseErr.Err.Error(),
				Code:    http.StatusUnprocessableEntity,
			})
			return nil, err
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "extraction_failed",
			Message: "PDF text extraction failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return nil, err
	}

	log.Printf("📄 Extracted %s: %d pages, %d words", header.Filename, result.PageCount, result.WordCount)

	return &models.Document{
		ID:         uuid.NewString(),
		Filename:   header.Filename,
		Text:       result.Text,
		PageCount:  result.PageCount,
		WordCount:  result.WordCount,
		HasText:    result.HasText,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// sessionDocument loads the document of the authenticated session.
// On failure it writes the error response itself and returns false.
func (h *Handler) sessionDocument(c *gin.Context) (*models.Document, bool) {
	doc, err := h.Sessions.Get(c.Request.Context(), middleware.GetSessionID(c))
	if errors.Is(err, session.ErrNoDocument) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no_document",
			Message: "No document loaded. Upload a PDF first.",
			Code:    http.StatusNotFound,
		})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load document",
			Code:    http.StatusInternalServerError,
		})
		return nil, false
	}
	return doc, true
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (h *Handler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Error:   "file_too_large",
		Message: fmt.Sprintf("File exceeds the %dMB upload limit", h.MaxUploadSize>>20),
		Code:    http.StatusRequestEntityTooLarge,
	})
}
