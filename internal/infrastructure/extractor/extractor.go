// Package extractor turns an uploaded resume into plain text by dispatching on its file type.
package extractor

import (
	"context"
	"strings"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/extractor/docxtext"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/extractor/plaintext"
)

// Strategy extracts text from the raw bytes of one file format.
type Strategy interface {
	Extract(ctx context.Context, raw []byte) (domain.ExtractedText, error)
}

type Extractor struct {
	strategies map[domain.FileType]Strategy
}

func New() *Extractor {
	return &Extractor{
		strategies: map[domain.FileType]Strategy{
			domain.FileTypePDF:  pdftext.NewExtractor(),
			domain.FileTypeDOCX: docxtext.NewExtractor(),
			domain.FileTypeTXT:  plaintext.NewExtractor(),
		},
	}
}

func (e *Extractor) Extract(ctx context.Context, doc domain.UploadedDocument) (domain.ExtractedText, error) {
	fileType := doc.Type
	if fileType == "" {
		detected, err := domain.FileTypeFromName(doc.Filename)
		if err != nil {
			return domain.ExtractedText{}, err
		}
		fileType = detected
	}

	strategy, ok := e.strategies[fileType]
	if !ok {
		return domain.ExtractedText{}, &domain.UnsupportedFormatError{Filename: doc.Filename, Extension: string(fileType)}
	}

	out, err := strategy.Extract(ctx, doc.Body)
	if err != nil {
		return domain.ExtractedText{}, err
	}
	out.Type = fileType
	if strings.TrimSpace(out.Text) == "" {
		out.Warnings = append(out.Warnings, "document contains no extractable text")
	}
	return out, nil
}
