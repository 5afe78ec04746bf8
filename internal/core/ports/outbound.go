package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

// TextExtractor extracts plain text from an uploaded document.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.UploadedDocument) (domain.ExtractedText, error)
}

// TextNormalizer strips noise from extracted text.
type TextNormalizer interface {
	Normalize(text string) string
}

// CategoryClassifier maps normalized text to a category.
type CategoryClassifier interface {
	Classify(ctx context.Context, text string) (domain.Prediction, error)
}

// ArtifactSource opens read-only model artifacts by key.
type ArtifactSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// OutcomeObserver receives every finished request.
type OutcomeObserver interface {
	ObserveOutcome(outcome domain.Outcome, duration time.Duration)
}
