package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/resume-classifier/internal/infrastructure/model"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/catalog"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/linear"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/tfidf"
)

func testArtifacts(t *testing.T) *model.Artifacts {
	t.Helper()
	vectorizer, err := tfidf.New(tfidf.Params{
		Vocabulary: map[string]int{"court": 0, "lawyer": 1, "canvas": 2},
		IDF:        []float64{2.5, 2.0, 1.5},
	})
	if err != nil {
		t.Fatalf("tfidf.New() error = %v", err)
	}
	clf, err := linear.New(linear.Params{
		Classes:   []int{0, 1, 99},
		Coef:      [][]float64{{1.5, 2.0, -1}, {0, 0, 3}, {0, 0, 0}},
		Intercept: []float64{0, 0, 0},
	})
	if err != nil {
		t.Fatalf("linear.New() error = %v", err)
	}
	return &model.Artifacts{Vectorizer: vectorizer, Model: clf}
}

func TestModelWorkbook(t *testing.T) {
	buf, err := ModelWorkbook(testArtifacts(t), catalog.Default(), 1)
	if err != nil {
		t.Fatalf("ModelWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	categories, err := f.GetRows(SheetCategories)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", SheetCategories, err)
	}
	if len(categories) != 26 || categories[1][1] != "Advocate" {
		t.Fatalf("unexpected categories sheet: %d rows, first %v", len(categories), categories[1])
	}

	vocabulary, err := f.GetRows(SheetVocabulary)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", SheetVocabulary, err)
	}
	if len(vocabulary) != 4 || vocabulary[2][1] != "lawyer" || vocabulary[2][2] != "2" {
		t.Fatalf("unexpected vocabulary sheet %v", vocabulary)
	}

	top, err := f.GetRows(SheetTopTerms)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", SheetTopTerms, err)
	}
	// One row per class with a positive weight; class 99 has none.
	if len(top) != 3 {
		t.Fatalf("expected header and 2 rows, got %v", top)
	}
	if top[1][1] != "Advocate" || top[1][3] != "lawyer" {
		t.Fatalf("unexpected top term row %v", top[1])
	}
	if top[2][1] != "Arts" || top[2][3] != "canvas" {
		t.Fatalf("unexpected top term row %v", top[2])
	}
}

func TestModelWorkbookRequiresArtifacts(t *testing.T) {
	if _, err := ModelWorkbook(nil, catalog.Default(), 5); err == nil {
		t.Fatal("expected error for missing artifacts")
	}
}
