// export.go serves task results as downloadable files.
//
// Supported downloads:
//   - speech.mp3: Text-to-Speech audio of the document
//   - wordcloud.png: Word cloud image of the document
//
// Results are not kept between requests: each download runs its task again
// on the session's document.
package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/speech"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

// DownloadSpeech returns the document read aloud as an MP3 file.
// GET /api/v1/document/speech.mp3
func (h *Handler) DownloadSpeech(c *gin.Context) {
	out, ok := h.runForDownload(c, tasks.TextToSpeech{})
	if !ok {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Audio.Filename))
	c.Data(http.StatusOK, speech.MIMEType, out.Audio.Data)
}

// DownloadWordCloud returns the document's word cloud as a PNG file named
// after the uploaded PDF.
// GET /api/v1/document/wordcloud.png
func (h *Handler) DownloadWordCloud(c *gin.Context) {
	doc, ok := h.sessionDocument(c)
	if !ok {
		return
	}

	out, ok := h.runTaskForDownload(c, tasks.WordCloud{}, doc.Text)
	if !ok {
		return
	}

	// Go Pattern: We sanitize the name for use in filenames. This prevents
	// issues with special characters in Content-Disposition headers.
	filename := sanitizeFilename(strings.TrimSuffix(doc.Filename, filepath.Ext(doc.Filename)))
	if filename == "" {
		filename = "document"
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-wordcloud.png"`, filename))
	c.Data(http.StatusOK, "image/png", out.Image)
}

func (h *Handler) runForDownload(c *gin.Context, task tasks.Task) (*tasks.Outcome, bool) {
	doc, ok := h.sessionDocument(c)
	if !ok {
		return nil, false
	}
	return h.runTaskForDownload(c, task, doc.Text)
}

// runTaskForDownload runs task and turns a notice into an error response,
// since a file download has nowhere else to show it.
func (h *Handler) runTaskForDownload(c *gin.Context, task tasks.Task, text string) (*tasks.Outcome, bool) {
	out, ok := h.run(c, task, text)
	if !ok {
		return nil, false
	}

	if n := out.Notice; n != nil {
		status := http.StatusUnprocessableEntity
		if n.Level == tasks.LevelError {
			status = http.StatusBadGateway
		}
		c.JSON(status, models.ErrorResponse{
			Error:   string(n.Code),
			Message: n.Message,
			Code:    status,
		})
		return nil, false
	}
	return out, true
}

// maxFilenameRunes caps the download name taken from the uploaded file.
const maxFilenameRunes = 100

// sanitizeFilename removes characters that aren't safe for filenames.
// Go Pattern: Keep it simple: replace unsafe characters with hyphens
// and trim the result. We don't need a full filesystem-safe sanitizer
// since this is just for the Content-Disposition header.
func sanitizeFilename(name string) string {
	// Replace common unsafe characters
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	// Collapse multiple hyphens/spaces
	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)

	// Limit length, counted in characters so a multi-byte rune is never split
	if r := []rune(name); len(r) > maxFilenameRunes {
		name = strings.TrimSpace(string(r[:maxFilenameRunes]))
	}

	return name
}
