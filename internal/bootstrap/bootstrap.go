package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kirillkom/resume-classifier/internal/config"
	"github.com/kirillkom/resume-classifier/internal/core/ports"
	"github.com/kirillkom/resume-classifier/internal/core/usecase"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/extractor"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/catalog"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/normalize"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/resilience"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/storage/gcsstore"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/storage/s3store"
)

type App struct {
	Config config.Config

	Categories *catalog.Catalog
	Artifacts  *model.Artifacts
	ClassifyUC *usecase.ClassifyResumeUseCase
}

// New loads the fitted artifacts once and wires the classification pipeline.
// observer may be nil.
func New(ctx context.Context, cfg config.Config, observer ports.OutcomeObserver) (*App, error) {
	source, closeSource, err := newArtifactSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init artifact source: %w", err)
	}
	defer closeSource()

	artifacts, err := model.LoadArtifacts(ctx, source, cfg.VectorizerKey, cfg.ClassifierKey)
	if err != nil {
		return nil, fmt.Errorf("load model artifacts: %w", err)
	}

	categories, err := catalog.Load(cfg.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	warnUnmappedClasses(artifacts, categories)

	classifier := model.NewClassifier(artifacts.Vectorizer, artifacts.Model, categories)
	classifyUC := usecase.NewClassifyResumeUseCase(extractor.New(), normalize.New(), classifier, observer)

	slog.Info("model_loaded",
		"source", fmt.Sprint(source),
		"features", artifacts.Vectorizer.NumFeatures(),
		"classes", len(artifacts.Model.Classes()),
		"categories", categories.Len(),
	)

	return &App{
		Config:     cfg,
		Categories: categories,
		Artifacts:  artifacts,
		ClassifyUC: classifyUC,
	}, nil
}

func newArtifactSource(ctx context.Context, cfg config.Config) (ports.ArtifactSource, func(), error) {
	noop := func() {}
	executor := resilience.NewExecutor(resilience.ArtifactFetchConfig(cfg.ArtifactFetchRetries))

	switch strings.ToLower(strings.TrimSpace(cfg.ArtifactSource)) {
	case "", "local":
		source, err := localfs.New(cfg.ArtifactDir)
		if err != nil {
			return nil, noop, err
		}
		return source, noop, nil
	case "s3":
		source, err := s3store.New(ctx, s3store.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, executor)
		if err != nil {
			return nil, noop, err
		}
		return source, noop, nil
	case "gcs":
		source, err := gcsstore.New(ctx, gcsstore.Config{
			Bucket:          cfg.GCSBucket,
			CredentialsFile: cfg.GCSCredentialsFile,
		}, executor)
		if err != nil {
			return nil, noop, err
		}
		return source, closeQuietly(source), nil
	default:
		return nil, noop, fmt.Errorf("unknown ARTIFACT_SOURCE %q (want local, s3 or gcs)", cfg.ArtifactSource)
	}
}

func closeQuietly(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Warn("artifact_source_close", "error", err)
		}
	}
}

func warnUnmappedClasses(artifacts *model.Artifacts, categories *catalog.Catalog) {
	var missing []int
	for _, classID := range artifacts.Model.Classes() {
		if _, ok := categories.Lookup(classID); !ok {
			missing = append(missing, classID)
		}
	}
	if len(missing) > 0 {
		slog.Warn("model_classes_without_category", "class_ids", missing)
	}
}
