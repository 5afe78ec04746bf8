package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/core/ports"
)

const (
	msgUnsupportedFormat = "Unsupported file type. Please upload a PDF, DOCX, or TXT file."
	msgDecode            = "The text file could not be decoded."
	msgInvalidInput      = "The uploaded file could not be read."
	msgClassification    = "The resume could not be classified."
	msgInternal          = "Unexpected error while processing the resume."
)

type ClassifyResumeUseCase struct {
	extractor  ports.TextExtractor
	normalizer ports.TextNormalizer
	classifier ports.CategoryClassifier
	observer   ports.OutcomeObserver
	now        func() time.Time
}

func NewClassifyResumeUseCase(
	extractor ports.TextExtractor,
	normalizer ports.TextNormalizer,
	classifier ports.CategoryClassifier,
	observer ports.OutcomeObserver,
) *ClassifyResumeUseCase {
	return &ClassifyResumeUseCase{
		extractor:  extractor,
		normalizer: normalizer,
		classifier: classifier,
		observer:   observer,
		now:        time.Now,
	}
}

// Classify runs extraction, normalization and classification for one upload.
// It never returns an error: every failure is reported in the outcome.
func (uc *ClassifyResumeUseCase) Classify(ctx context.Context, filename string, body io.Reader) domain.Outcome {
	started := uc.now()
	outcome := domain.Outcome{State: domain.StateIdle, Filename: baseName(filename)}
	uc.transition(ctx, &outcome, domain.StateProcessing)

	extracted, prediction, err := uc.runPipeline(ctx, &outcome, filename, body)
	if err != nil {
		outcome.Failure = failureFor(err, outcome.FileType)
		uc.transition(ctx, &outcome, domain.StateFailed)
		slog.WarnContext(ctx, "classify_failed",
			"filename", outcome.Filename,
			"file_type", outcome.FileType,
			"kind", outcome.Failure.Kind,
			"error", err,
		)
	} else {
		outcome.Extracted = &extracted
		outcome.Prediction = &prediction
		uc.transition(ctx, &outcome, domain.StateDone)
		slog.InfoContext(ctx, "classify_done",
			"filename", outcome.Filename,
			"file_type", outcome.FileType,
			"category", prediction.Category,
			"class_id", prediction.ClassID,
			"warnings", len(extracted.Warnings),
		)
	}

	if uc.observer != nil {
		uc.observer.ObserveOutcome(outcome, uc.now().Sub(started))
	}
	return outcome
}

func (uc *ClassifyResumeUseCase) runPipeline(
	ctx context.Context,
	outcome *domain.Outcome,
	filename string,
	body io.Reader,
) (extracted domain.ExtractedText, prediction domain.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	if strings.TrimSpace(filename) == "" {
		return extracted, prediction, domain.WrapError(domain.ErrInvalidInput, "validate upload", errors.New("filename is required"))
	}
	fileType, err := domain.FileTypeFromName(outcome.Filename)
	if err != nil {
		return extracted, prediction, err
	}
	outcome.FileType = fileType

	if body == nil {
		return extracted, prediction, domain.WrapError(domain.ErrInvalidInput, "read upload", errors.New("body is nil"))
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return extracted, prediction, domain.WrapError(domain.ErrInvalidInput, "read upload", err)
	}

	extracted, err = uc.extractor.Extract(ctx, domain.UploadedDocument{Filename: filename, Type: fileType, Body: raw})
	if err != nil {
		return extracted, prediction, fmt.Errorf("extract text: %w", err)
	}

	cleaned := uc.normalizer.Normalize(extracted.Text)

	prediction, err = uc.classifier.Classify(ctx, cleaned)
	if err != nil {
		return extracted, prediction, fmt.Errorf("classify text: %w", err)
	}
	return extracted, prediction, nil
}

func (uc *ClassifyResumeUseCase) transition(ctx context.Context, outcome *domain.Outcome, next domain.State) {
	if !outcome.State.CanTransition(next) {
		slog.ErrorContext(ctx, "classify_invalid_transition", "from", outcome.State, "to", next)
		return
	}
	slog.DebugContext(ctx, "classify_state", "filename", outcome.Filename, "from", outcome.State, "to", next)
	outcome.State = next
}

func failureFor(err error, fileType domain.FileType) *domain.Failure {
	switch {
	case domain.IsKind(err, domain.ErrUnsupportedFormat):
		return &domain.Failure{Kind: domain.FailureUnsupportedFormat, Message: msgUnsupportedFormat}
	case domain.IsKind(err, domain.ErrDecode):
		return &domain.Failure{Kind: domain.FailureDecode, Message: msgDecode}
	case domain.IsKind(err, domain.ErrExtraction):
		return &domain.Failure{Kind: domain.FailureExtraction, Message: extractionMessage(err, fileType)}
	case domain.IsKind(err, domain.ErrInvalidInput):
		return &domain.Failure{Kind: domain.FailureInvalidInput, Message: msgInvalidInput}
	case domain.IsKind(err, domain.ErrClassification):
		return &domain.Failure{Kind: domain.FailureClassification, Message: msgClassification}
	default:
		return &domain.Failure{Kind: domain.FailureInternal, Message: msgInternal}
	}
}

// extractionMessage names the format and appends the library's own error text.
func extractionMessage(err error, fileType domain.FileType) string {
	message := fmt.Sprintf("Could not extract text from the %s file", strings.ToUpper(string(fileType)))
	var extErr *domain.ExtractionError
	if errors.As(err, &extErr) && extErr.Cause != nil {
		return message + ": " + extErr.Cause.Error()
	}
	return message + "."
}

// baseName drops any client-side directory, including Windows paths sent by browsers.
func baseName(filename string) string {
	if idx := strings.LastIndexAny(filename, `/\`); idx >= 0 {
		return filename[idx+1:]
	}
	return filename
}
