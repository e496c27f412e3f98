// tasks.go lists the available analysis tasks and runs them.
package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

// ListTasks returns every task label with its parameters.
// GET /api/v1/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, models.TaskListResponse{Tasks: tasks.Catalog()})
}

// RunTask runs one task on the session's document.
// POST /api/v1/document/tasks
//
// Request body:
//
//	{"task": "Summarization", "ratio": 0.5}
//	{"task": "Encryption", "shift": 5}
//	{"task": "Text Similarity Check", "text2": "..."}
//
// A task that fails still answers 200: the outcome carries a notice
// explaining what went wrong.
func (h *Handler) RunTask(c *gin.Context) {
	// Go Pattern: ShouldBindJSON reads the request body and validates it
	// using the `binding` tags on the struct.
	var req models.RunTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Provide the task label in the 'task' field",
			Code:    http.StatusBadRequest,
		})
		return
	}

	task, ok := parseTask(c, req)
	if !ok {
		return
	}

	doc, ok := h.sessionDocument(c)
	if !ok {
		return
	}

	out, ok := h.run(c, task, doc.Text)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, outcomeResponse(out))
}

// parseTask validates the label and parameters of req.
// On failure it writes a 400 response and returns false.
func parseTask(c *gin.Context, req models.RunTaskRequest) (tasks.Task, bool) {
	task, err := tasks.Parse(req.Task, req.Params)
	if err == nil {
		return task, true
	}

	code := "invalid_parameter"
	if errors.Is(err, tasks.ErrUnknownTask) {
		code = "invalid_task"
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
	return nil, false
}

// run hands task to the runner. Only a programming error (an unknown task
// type) comes back as an error; it is reported as a 500.
func (h *Handler) run(c *gin.Context, task tasks.Task, text string) (*tasks.Outcome, bool) {
	out, err := h.Runner.Run(c.Request.Context(), task, text)
	if err != nil {
		log.Printf("❌ Task %q could not run: %v", task.Label(), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Task could not be run",
			Code:    http.StatusInternalServerError,
		})
		return nil, false
	}

	log.Printf("✅ Task %q finished", task.Label())
	return out, true
}

// outcomeResponse adds the display lines and inlines binary results as
// data URIs.
func outcomeResponse(out *tasks.Outcome) models.OutcomeResponse {
	resp := models.OutcomeResponse{
		Outcome: out,
		Lines:   out.Lines(),
	}
	if resp.Lines == nil {
		resp.Lines = []string{}
	}
	if out.Audio != nil {
		resp.AudioURI = out.Audio.DataURI()
		resp.DownloadLink = out.Audio.DownloadLink()
	}
	if len(out.Image) > 0 {
		resp.ImageURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(out.Image)
	}
	return resp
}
