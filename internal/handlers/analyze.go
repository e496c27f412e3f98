// analyze.go is the stateless one-shot endpoint: upload and run in a single
// request, no session involved.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
)

// Analyze extracts the text of an uploaded PDF and runs one task on it.
// POST /api/v1/analyze
//
// Multipart form fields: file (required), task (required), and the task's
// optional parameters ratio, shift, text2 and query.
func (h *Handler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	// Go Pattern: ShouldBind picks the binding from the Content-Type, so the
	// same RunTaskRequest struct reads multipart form fields here and JSON
	// in RunTask. The embedded Params struct is filled through its form tags.
	var req models.RunTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		if isTooLarge(err) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Provide a 'file' and a 'task' form field",
			Code:    http.StatusBadRequest,
		})
		return
	}

	task, ok := parseTask(c, req)
	if !ok {
		return
	}

	doc, err := h.loadDocument(c)
	if err != nil {
		return
	}

	out, ok := h.run(c, task, doc.Text)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Document: *doc,
		Outcome:  outcomeResponse(out),
	})
}
