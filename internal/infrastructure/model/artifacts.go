package model

import (
	"context"
	"fmt"

	"github.com/kirillkom/resume-classifier/internal/core/ports"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/linear"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/tfidf"
)

const (
	DefaultVectorizerKey = "tfidf.json"
	DefaultClassifierKey = "clf.json"
)

type Artifacts struct {
	Vectorizer *tfidf.Vectorizer
	Model      *linear.Model
}

// LoadArtifacts reads both fitted artifacts and checks that they agree on the
// feature space.
func LoadArtifacts(ctx context.Context, source ports.ArtifactSource, vectorizerKey, classifierKey string) (*Artifacts, error) {
	if vectorizerKey == "" {
		vectorizerKey = DefaultVectorizerKey
	}
	if classifierKey == "" {
		classifierKey = DefaultClassifierKey
	}

	vectorizer, err := loadVectorizer(ctx, source, vectorizerKey)
	if err != nil {
		return nil, err
	}
	model, err := loadModel(ctx, source, classifierKey)
	if err != nil {
		return nil, err
	}

	if vectorizer.NumFeatures() != model.NumFeatures() {
		return nil, fmt.Errorf("vectorizer produces %d features, classifier expects %d", vectorizer.NumFeatures(), model.NumFeatures())
	}
	return &Artifacts{Vectorizer: vectorizer, Model: model}, nil
}

func loadVectorizer(ctx context.Context, source ports.ArtifactSource, key string) (*tfidf.Vectorizer, error) {
	reader, err := source.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open vectorizer %s: %w", key, err)
	}
	defer reader.Close()

	vectorizer, err := tfidf.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("load vectorizer %s: %w", key, err)
	}
	return vectorizer, nil
}

func loadModel(ctx context.Context, source ports.ArtifactSource, key string) (*linear.Model, error) {
	reader, err := source.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open classifier %s: %w", key, err)
	}
	defer reader.Close()

	model, err := linear.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("load classifier %s: %w", key, err)
	}
	return model, nil
}
