package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/extractor"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/catalog"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/normalize"
	"github.com/kirillkom/resume-classifier/internal/testutil"
)

type extractorFake struct {
	out   domain.ExtractedText
	err   error
	panic bool
	got   domain.UploadedDocument
	calls int
}

func (f *extractorFake) Extract(_ context.Context, doc domain.UploadedDocument) (domain.ExtractedText, error) {
	f.calls++
	f.got = doc
	if f.panic {
		panic("boom")
	}
	if f.err != nil {
		return domain.ExtractedText{}, f.err
	}
	return f.out, nil
}

type normalizerFake struct {
	got string
}

func (f *normalizerFake) Normalize(text string) string {
	f.got = text
	return strings.ToUpper(text)
}

type classifierFake struct {
	prediction domain.Prediction
	err        error
	got        string
}

func (f *classifierFake) Classify(_ context.Context, text string) (domain.Prediction, error) {
	f.got = text
	if f.err != nil {
		return domain.Prediction{}, f.err
	}
	return f.prediction, nil
}

type observerFake struct {
	outcomes  []domain.Outcome
	durations []time.Duration
}

func (f *observerFake) ObserveOutcome(outcome domain.Outcome, duration time.Duration) {
	f.outcomes = append(f.outcomes, outcome)
	f.durations = append(f.durations, duration)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestClassifyRunsPipelineInOrder(t *testing.T) {
	ext := &extractorFake{out: domain.ExtractedText{Text: "python dev", Type: domain.FileTypeTXT}}
	norm := &normalizerFake{}
	cls := &classifierFake{prediction: domain.Prediction{ClassID: 20, Category: "Python Developer", Known: true}}
	obs := &observerFake{}
	uc := NewClassifyResumeUseCase(ext, norm, cls, obs)

	outcome := uc.Classify(context.Background(), "CV.TXT", strings.NewReader("python dev"))

	if !outcome.Succeeded() {
		t.Fatalf("expected done outcome, got %+v", outcome)
	}
	if ext.got.Type != domain.FileTypeTXT || string(ext.got.Body) != "python dev" {
		t.Fatalf("unexpected extractor input %+v", ext.got)
	}
	if norm.got != "python dev" {
		t.Fatalf("expected normalizer to receive extracted text, got %q", norm.got)
	}
	if cls.got != "PYTHON DEV" {
		t.Fatalf("expected classifier to receive normalized text, got %q", cls.got)
	}
	if outcome.Prediction == nil || outcome.Prediction.Category != "Python Developer" {
		t.Fatalf("unexpected prediction %+v", outcome.Prediction)
	}
	if outcome.Extracted == nil || outcome.Extracted.Text != "python dev" {
		t.Fatalf("expected raw extracted text in outcome, got %+v", outcome.Extracted)
	}
	if outcome.FileType != domain.FileTypeTXT || outcome.Failure != nil {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0].State != domain.StateDone {
		t.Fatalf("expected one observed done outcome, got %+v", obs.outcomes)
	}
}

func TestClassifyMapsFailures(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		body        io.Reader
		extractErr  error
		classifyErr error
		wantKind    domain.FailureKind
		wantMessage string
	}{
		{
			name:        "unsupported suffix",
			filename:    "setup.exe",
			body:        strings.NewReader("MZ"),
			wantKind:    domain.FailureUnsupportedFormat,
			wantMessage: msgUnsupportedFormat,
		},
		{
			name:        "no suffix",
			filename:    "resume",
			body:        strings.NewReader("text"),
			wantKind:    domain.FailureUnsupportedFormat,
			wantMessage: msgUnsupportedFormat,
		},
		{
			name:     "empty filename",
			filename: " ",
			body:     strings.NewReader("text"),
			wantKind: domain.FailureInvalidInput,
		},
		{
			name:     "unreadable body",
			filename: "cv.txt",
			body:     failingReader{},
			wantKind: domain.FailureInvalidInput,
		},
		{
			name:     "nil body",
			filename: "cv.txt",
			wantKind: domain.FailureInvalidInput,
		},
		{
			name:        "extraction",
			filename:    "cv.pdf",
			body:        strings.NewReader("%PDF"),
			extractErr:  &domain.ExtractionError{Format: domain.FileTypePDF, Cause: errors.New("bad xref")},
			wantKind:    domain.FailureExtraction,
			wantMessage: "Could not extract text from the PDF file: bad xref",
		},
		{
			name:       "decode",
			filename:   "cv.txt",
			body:       strings.NewReader("x"),
			extractErr: domain.WrapError(domain.ErrDecode, "decode latin-1", errors.New("bad byte")),
			wantKind:   domain.FailureDecode,
		},
		{
			name:        "classification",
			filename:    "cv.txt",
			body:        strings.NewReader("x"),
			classifyErr: domain.WrapError(domain.ErrClassification, "predict", errors.New("width")),
			wantKind:    domain.FailureClassification,
		},
		{
			name:       "unexpected",
			filename:   "cv.txt",
			body:       strings.NewReader("x"),
			extractErr: errors.New("disk on fire"),
			wantKind:   domain.FailureInternal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := &observerFake{}
			uc := NewClassifyResumeUseCase(
				&extractorFake{err: tc.extractErr},
				&normalizerFake{},
				&classifierFake{err: tc.classifyErr},
				obs,
			)

			outcome := uc.Classify(context.Background(), tc.filename, tc.body)
			if outcome.State != domain.StateFailed {
				t.Fatalf("expected failed outcome, got %+v", outcome)
			}
			if outcome.Failure == nil || outcome.Failure.Kind != tc.wantKind {
				t.Fatalf("expected kind %q, got %+v", tc.wantKind, outcome.Failure)
			}
			if tc.wantMessage != "" && outcome.Failure.Message != tc.wantMessage {
				t.Fatalf("expected message %q, got %q", tc.wantMessage, outcome.Failure.Message)
			}
			if outcome.Prediction != nil {
				t.Fatalf("expected no prediction on failure, got %+v", outcome.Prediction)
			}
			if len(obs.outcomes) != 1 {
				t.Fatalf("expected failure to be observed once, got %d", len(obs.outcomes))
			}
		})
	}
}

func TestClassifyUnsupportedSkipsExtractor(t *testing.T) {
	ext := &extractorFake{}
	uc := NewClassifyResumeUseCase(ext, &normalizerFake{}, &classifierFake{}, nil)

	outcome := uc.Classify(context.Background(), "photo.png", strings.NewReader("png"))
	if outcome.Failure == nil || outcome.Failure.Kind != domain.FailureUnsupportedFormat {
		t.Fatalf("expected unsupported format, got %+v", outcome)
	}
	if ext.calls != 0 {
		t.Fatalf("expected extractor not to run, got %d calls", ext.calls)
	}
}

func TestClassifyRecoversFromPanic(t *testing.T) {
	uc := NewClassifyResumeUseCase(&extractorFake{panic: true}, &normalizerFake{}, &classifierFake{}, nil)

	outcome := uc.Classify(context.Background(), "cv.docx", bytes.NewReader([]byte("PK")))
	if outcome.Failure == nil || outcome.Failure.Kind != domain.FailureInternal {
		t.Fatalf("expected internal failure, got %+v", outcome)
	}
}

func TestClassifyStripsClientDirectory(t *testing.T) {
	ext := &extractorFake{out: domain.ExtractedText{Text: "x"}}
	uc := NewClassifyResumeUseCase(ext, &normalizerFake{}, &classifierFake{}, nil)

	outcome := uc.Classify(context.Background(), `C:\Users\jd\My.Docs\resume.txt`, strings.NewReader("x"))
	if outcome.Filename != "resume.txt" || outcome.FileType != domain.FileTypeTXT {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestClassifyReportsDuration(t *testing.T) {
	obs := &observerFake{}
	uc := NewClassifyResumeUseCase(&extractorFake{}, &normalizerFake{}, &classifierFake{}, obs)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	uc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 250 * time.Millisecond)
	}

	uc.Classify(context.Background(), "cv.txt", strings.NewReader(""))
	if len(obs.durations) != 1 || obs.durations[0] != 250*time.Millisecond {
		t.Fatalf("expected 250ms duration, got %v", obs.durations)
	}
}

func newPipeline(t *testing.T) *ClassifyResumeUseCase {
	t.Helper()
	source := dirSource(filepath.Join("..", "..", "infrastructure", "model", "testdata"))
	artifacts, err := model.LoadArtifacts(context.Background(), source, "", "")
	if err != nil {
		t.Fatalf("LoadArtifacts() error = %v", err)
	}
	return NewClassifyResumeUseCase(
		extractor.New(),
		normalize.New(),
		model.NewClassifier(artifacts.Vectorizer, artifacts.Model, catalog.Default()),
		nil,
	)
}

type dirSource string

func (d dirSource) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), key))
}

func TestClassifyEndToEndTXT(t *testing.T) {
	uc := newPipeline(t)

	outcome := uc.Classify(context.Background(), "resume.txt",
		strings.NewReader("Experienced Python developer. Django, SQL; see https://example.com/jd #python @jd"))
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome.Failure)
	}

	names := map[string]bool{}
	for _, category := range catalog.Default().List() {
		names[category.Name] = true
	}
	if !names[outcome.Prediction.Category] {
		t.Fatalf("category %q is not in the category table", outcome.Prediction.Category)
	}
	if outcome.Prediction.Category != "Python Developer" {
		t.Fatalf("expected Python Developer, got %q", outcome.Prediction.Category)
	}
}

func TestClassifyEndToEndDOCX(t *testing.T) {
	uc := newPipeline(t)
	raw := testutil.DOCX(t, "John Doe", "Civil Engineer", "10 years experience in structural design")

	outcome := uc.Classify(context.Background(), "john_doe.docx", bytes.NewReader(raw))
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome.Failure)
	}
	want := "John Doe\nCivil Engineer\n10 years experience in structural design\n"
	if outcome.Extracted.Text != want {
		t.Fatalf("expected extracted text %q, got %q", want, outcome.Extracted.Text)
	}
	if outcome.Prediction.Category != "Civil Engineer" {
		t.Fatalf("expected Civil Engineer, got %q", outcome.Prediction.Category)
	}
}

func TestClassifyEndToEndPDF(t *testing.T) {
	uc := newPipeline(t)
	raw := testutil.PDF(t, "Hadoop and Spark engineer")

	outcome := uc.Classify(context.Background(), "cv.pdf", bytes.NewReader(raw))
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome.Failure)
	}
	if outcome.Prediction.Category != "Hadoop" {
		t.Fatalf("expected Hadoop, got %q", outcome.Prediction.Category)
	}
}

func TestClassifyEndToEndCorruptDOCXKeepsCause(t *testing.T) {
	outcome := newPipeline(t).Classify(context.Background(), "cv.docx", strings.NewReader("not a zip"))
	if outcome.Failure == nil || outcome.Failure.Kind != domain.FailureExtraction {
		t.Fatalf("expected extraction failure, got %+v", outcome)
	}
	const prefix = "Could not extract text from the DOCX file: "
	if !strings.HasPrefix(outcome.Failure.Message, prefix) || !strings.Contains(outcome.Failure.Message, "zip") {
		t.Fatalf("expected message with zip cause, got %q", outcome.Failure.Message)
	}
}

func TestClassifyEndToEndUnsupported(t *testing.T) {
	outcome := newPipeline(t).Classify(context.Background(), "installer.exe", strings.NewReader("MZ"))
	if outcome.Failure == nil || outcome.Failure.Kind != domain.FailureUnsupportedFormat {
		t.Fatalf("expected unsupported format, got %+v", outcome)
	}
}
