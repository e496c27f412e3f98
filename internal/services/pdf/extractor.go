// Package pdf provides the document loader: PDF bytes in, plain text out.
//
// We use the ledongthuc/pdf library for text extraction.
// It's a pure Go implementation with no CGO or external dependencies required.
// This makes deployment simpler (just a single binary).
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	log "github.com/sirupsen/logrus"
)

// NoTextPlaceholder is returned instead of an empty string when a PDF has
// no extractable text (for example a scanned, image-only document).
const NoTextPlaceholder = "No text found in the PDF."

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n"

// ErrNotPDF means the uploaded bytes are not a PDF at all.
var ErrNotPDF = errors.New("not a PDF document")

// ParseError is returned when the upload cannot be read as a PDF.
// It blocks every task until a valid file is supplied.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "could not parse PDF: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionResult holds the output from a PDF text extraction.
type ExtractionResult struct {
	Text      string // Extracted text content, or NoTextPlaceholder
	PageCount int    // Number of pages
	WordCount int    // Word count (0 when only the placeholder is returned)
	HasText   bool   // False when Text is the placeholder
}

// ProgressFunc is called after each page, skipped or not, with the
// 1-indexed page number.
type ProgressFunc func(page, total int)

// Extract reads a PDF held in memory and extracts all text content.
func Extract(data []byte) (*ExtractionResult, error) {
	return ExtractWithProgress(data, nil)
}

// ExtractWithProgress is Extract with a per-page callback.
//
// Go Pattern: The pdf library can panic on badly broken files. The deferred
// recover turns that panic into a ParseError so one bad upload can never take
// the server down. Named return values let the deferred function set them.
func ExtractWithProgress(data []byte, onPage ProgressFunc) (result *ExtractionResult, err error) {
	if !ValidatePDF(data) {
		return nil, &ParseError{Err: ErrNotPDF}
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ParseError{Err: fmt.Errorf("pdf reader panic: %v", r)}
		}
	}()

	// Go Pattern: bytes.Reader gives the library the io.ReaderAt it needs
	// for random access; nothing has to be closed once we return.
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	pageCount := pdfReader.NumPage()
	pages := make([]string, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		if text, ok := pageText(pdfReader, i); ok {
			pages = append(pages, text)
		}
		// Skipped pages count too, so progress always reaches the total.
		if onPage != nil {
			onPage(i, pageCount)
		}
	}

	text := strings.TrimSpace(strings.Join(pages, pageSeparator))
	if text == "" {
		return &ExtractionResult{
			Text:      NoTextPlaceholder,
			PageCount: pageCount,
		}, nil
	}

	return &ExtractionResult{
		Text:      text,
		PageCount: pageCount,
		WordCount: countWords(text),
		HasText:   true,
	}, nil
}

// pageText extracts the text of page i. Missing pages and pages whose text
// can't be read are skipped.
func pageText(r *pdf.Reader, i int) (string, bool) {
	page := r.Page(i)
	if page.V.IsNull() {
		return "", false
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		// Log but don't fail, some pages may have images only
		log.WithField("page", i).Warnf("⚠️  PDF page text extraction failed: %v", err)
		return "", false
	}
	return text, true
}

// countWords counts the number of words in a text string.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// ValidatePDF sniffs the content type of the upload.
// File extensions lie; the magic bytes don't.
func ValidatePDF(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return mimetype.Detect(data).Is("application/pdf")
}
