// Package export writes an inspection workbook for the loaded model artifacts.
package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model"
	"github.com/kirillkom/resume-classifier/internal/infrastructure/model/catalog"
)

const (
	SheetCategories = "Categories"
	SheetVocabulary = "Vocabulary"
	SheetTopTerms   = "TopTerms"

	DefaultTopTerms = 15
)

type termWeight struct {
	feature int
	weight  float64
}

// ModelWorkbook returns an XLSX document with the category table, the fitted
// vocabulary with IDF weights and the highest-weighted terms per class.
func ModelWorkbook(artifacts *model.Artifacts, categories *catalog.Catalog, topN int) (*bytes.Buffer, error) {
	if artifacts == nil || artifacts.Vectorizer == nil || artifacts.Model == nil {
		return nil, fmt.Errorf("model artifacts are not loaded")
	}
	if topN <= 0 {
		topN = DefaultTopTerms
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCategories); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, sheet := range []string{SheetVocabulary, SheetTopTerms} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	writeHeader(f, SheetCategories, "Class ID", "Category")
	for i, category := range categories.List() {
		writeRow(f, SheetCategories, i+2, category.ID, category.Name)
	}

	writeHeader(f, SheetVocabulary, "Feature", "Term", "IDF")
	terms := artifacts.Vectorizer.Terms()
	for idx, term := range terms {
		writeRow(f, SheetVocabulary, idx+2, idx, term, artifacts.Vectorizer.IDF(idx))
	}

	writeHeader(f, SheetTopTerms, "Class ID", "Category", "Rank", "Term", "Weight")
	row := 2
	for classIdx, classID := range artifacts.Model.Classes() {
		name, ok := categories.Lookup(classID)
		if !ok {
			name = domain.UnknownCategory
		}
		for rank, tw := range topWeights(artifacts, classIdx, topN) {
			writeRow(f, SheetTopTerms, row, classID, name, rank+1, terms[tw.feature], tw.weight)
			row++
		}
	}

	_ = f.SetColWidth(SheetCategories, "B", "B", 28)
	_ = f.SetColWidth(SheetVocabulary, "B", "B", 32)
	_ = f.SetColWidth(SheetTopTerms, "B", "B", 28)
	_ = f.SetColWidth(SheetTopTerms, "D", "D", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf, nil
}

func topWeights(artifacts *model.Artifacts, classIdx, topN int) []termWeight {
	width := artifacts.Model.NumFeatures()
	weights := make([]termWeight, 0, width)
	for feature := 0; feature < width; feature++ {
		if w := artifacts.Model.Weight(classIdx, feature); w > 0 {
			weights = append(weights, termWeight{feature: feature, weight: w})
		}
	}
	sort.SliceStable(weights, func(i, j int) bool { return weights[i].weight > weights[j].weight })
	if len(weights) > topN {
		weights = weights[:topN]
	}
	return weights
}

func writeHeader(f *excelize.File, sheet string, headers ...string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
