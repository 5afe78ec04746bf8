package linear

import (
	"strings"
	"testing"

	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/tfidf"
)

func TestPredictMulticlass(t *testing.T) {
	m, err := New(Params{
		Classes:   []int{7, 3, 9},
		Coef:      [][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
		Intercept: []float64{0, 0, 0},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := m.Predict(tfidf.Vector{Indices: []int{1}, Values: []float64{2}})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got != 3 {
		t.Fatalf("expected class 3, got %d", got)
	}
}

func TestPredictTieGoesToFirstClass(t *testing.T) {
	m, err := New(Params{
		Classes:   []int{4, 2, 1},
		Coef:      [][]float64{{1}, {1}, {0}},
		Intercept: []float64{0, 0, 0},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := m.Predict(tfidf.Vector{Indices: []int{0}, Values: []float64{1}})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got != 4 {
		t.Fatalf("expected first tied class 4, got %d", got)
	}

	empty, err := m.Predict(tfidf.Vector{})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if empty != 4 {
		t.Fatalf("expected class 4 for all-zero scores, got %d", empty)
	}
}

func TestPredictBinary(t *testing.T) {
	m, err := New(Params{
		Classes:   []int{0, 1},
		Coef:      [][]float64{{2, -2}},
		Intercept: []float64{0},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cases := []struct {
		x    tfidf.Vector
		want int
	}{
		{tfidf.Vector{Indices: []int{0}, Values: []float64{1}}, 1},
		{tfidf.Vector{Indices: []int{1}, Values: []float64{1}}, 0},
		{tfidf.Vector{}, 0},
	}
	for _, tc := range cases {
		got, err := m.Predict(tc.x)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		if got != tc.want {
			t.Fatalf("Predict(%+v) = %d, want %d", tc.x, got, tc.want)
		}
	}
	if w := m.Weight(0, 0); w != -2 {
		t.Fatalf("expected negated weight for first binary class, got %f", w)
	}
}

func TestPredictRejectsOutOfRangeFeature(t *testing.T) {
	m, err := New(Params{
		Classes:   []int{0, 1, 2},
		Coef:      [][]float64{{1}, {1}, {1}},
		Intercept: []float64{0, 0, 0},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := m.Predict(tfidf.Vector{Indices: []int{5}, Values: []float64{1}}); err == nil {
		t.Fatal("expected error for feature outside model width")
	}
}

func TestNewRejectsShapeMismatch(t *testing.T) {
	cases := map[string]Params{
		"one class":          {Classes: []int{0}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
		"missing rows":       {Classes: []int{0, 1, 2}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
		"ragged rows":        {Classes: []int{0, 1, 2}, Coef: [][]float64{{1}, {1, 2}, {1}}, Intercept: []float64{0, 0, 0}},
		"intercept mismatch": {Classes: []int{0, 1}, Coef: [][]float64{{1}}, Intercept: []float64{0, 0}},
		"wrong kind":         {Kind: "knn", Classes: []int{0, 1}, Coef: [][]float64{{1}}, Intercept: []float64{0}},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(params); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"classes": [0, 1`)); err == nil {
		t.Fatal("expected decode error")
	}
}
