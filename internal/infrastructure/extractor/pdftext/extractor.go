package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract concatenates the plain text of every page in page order. Pages without
// extractable text (scans, broken content streams) contribute nothing and are
// reported as warnings.
func (e *Extractor) Extract(_ context.Context, raw []byte) (out domain.ExtractedText, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			out = domain.ExtractedText{}
			err = &domain.ExtractionError{Format: domain.FileTypePDF, Cause: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return domain.ExtractedText{}, &domain.ExtractionError{Format: domain.FileTypePDF, Cause: err}
	}

	numPages := reader.NumPage()
	var (
		textBuilder strings.Builder
		warnings    []string
	)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: page object missing", i))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			warnings = append(warnings, fmt.Sprintf("page %d: no extractable text", i))
		}
		textBuilder.WriteString(text)
	}

	return domain.ExtractedText{
		Text:     textBuilder.String(),
		Units:    numPages,
		Warnings: warnings,
	}, nil
}
