// Package model wires the fitted vectorizer, the linear model and the category
// table into the classifier used by the pipeline.
package model

import (
	"context"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/catalog"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/tfidf"
)

type Vectorizer interface {
	Transform(text string) tfidf.Vector
}

type Predictor interface {
	Predict(x tfidf.Vector) (int, error)
}

type Classifier struct {
	vectorizer Vectorizer
	predictor  Predictor
	categories *catalog.Catalog
}

func NewClassifier(vectorizer Vectorizer, predictor Predictor, categories *catalog.Catalog) *Classifier {
	if categories == nil {
		categories = catalog.Default()
	}
	return &Classifier{
		vectorizer: vectorizer,
		predictor:  predictor,
		categories: categories,
	}
}

// Classify never fails on an identifier missing from the table; it reports
// domain.UnknownCategory instead.
func (c *Classifier) Classify(_ context.Context, text string) (domain.Prediction, error) {
	features := c.vectorizer.Transform(text)
	classID, err := c.predictor.Predict(features)
	if err != nil {
		return domain.Prediction{}, domain.WrapError(domain.ErrClassification, "predict", err)
	}

	name, ok := c.categories.Lookup(classID)
	if !ok {
		name = domain.UnknownCategory
	}
	return domain.Prediction{ClassID: classID, Category: name, Known: ok}, nil
}
