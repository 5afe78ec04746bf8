package ports

import (
	"context"
	"io"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

// ResumeClassifier is the inbound contract for one upload-to-category request.
type ResumeClassifier interface {
	Classify(ctx context.Context, filename string, body io.Reader) domain.Outcome
}

// CategoryCatalog is the inbound read model for the fixed category table.
type CategoryCatalog interface {
	List() []domain.Category
}
