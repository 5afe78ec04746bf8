// Package linear evaluates a fitted one-vs-rest linear classifier.
package linear

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/tfidf"
)

const Kind = "linear"

// Params is the serialized form of a fitted model. A binary model carries a single
// coefficient row whose positive side selects Classes[1].
type Params struct {
	Kind      string      `json:"kind"`
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

type Model struct {
	classes     []int
	coef        [][]float64
	intercept   []float64
	numFeatures int
}

func Decode(r io.Reader) (*Model, error) {
	var params Params
	if err := json.NewDecoder(r).Decode(&params); err != nil {
		return nil, fmt.Errorf("decode linear params: %w", err)
	}
	return New(params)
}

func New(params Params) (*Model, error) {
	if params.Kind != "" && params.Kind != Kind {
		return nil, fmt.Errorf("unexpected classifier kind %q", params.Kind)
	}
	if len(params.Classes) < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d", len(params.Classes))
	}
	rows := len(params.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(params.Coef) != rows {
		return nil, fmt.Errorf("expected %d coefficient rows for %d classes, got %d", rows, len(params.Classes), len(params.Coef))
	}
	if len(params.Intercept) != rows {
		return nil, fmt.Errorf("expected %d intercepts, got %d", rows, len(params.Intercept))
	}
	numFeatures := len(params.Coef[0])
	if numFeatures == 0 {
		return nil, errors.New("coefficient rows are empty")
	}
	for i, row := range params.Coef {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("coefficient row %d has %d features, want %d", i, len(row), numFeatures)
		}
	}
	return &Model{
		classes:     params.Classes,
		coef:        params.Coef,
		intercept:   params.Intercept,
		numFeatures: numFeatures,
	}, nil
}

func (m *Model) NumFeatures() int {
	return m.numFeatures
}

func (m *Model) Classes() []int {
	return append([]int(nil), m.classes...)
}

// Weight returns the coefficient of feature for the class at position classIdx.
// Binary models report the negated row for the first class.
func (m *Model) Weight(classIdx, feature int) float64 {
	if len(m.coef) == 1 {
		if classIdx == 0 {
			return -m.coef[0][feature]
		}
		return m.coef[0][feature]
	}
	return m.coef[classIdx][feature]
}

// DecisionFunction returns coef·x + intercept for every coefficient row.
func (m *Model) DecisionFunction(x tfidf.Vector) ([]float64, error) {
	scores := make([]float64, len(m.coef))
	for row, weights := range m.coef {
		score := m.intercept[row]
		for i, idx := range x.Indices {
			if idx < 0 || idx >= m.numFeatures {
				return nil, fmt.Errorf("feature index %d outside model width %d", idx, m.numFeatures)
			}
			score += weights[idx] * x.Values[i]
		}
		scores[row] = score
	}
	return scores, nil
}

// Predict returns the class identifier with the highest score. Ties go to the
// earliest class.
func (m *Model) Predict(x tfidf.Vector) (int, error) {
	scores, err := m.DecisionFunction(x)
	if err != nil {
		return 0, err
	}
	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.classes[1], nil
		}
		return m.classes[0], nil
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return m.classes[best], nil
}
