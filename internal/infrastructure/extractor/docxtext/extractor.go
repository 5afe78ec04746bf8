package docxtext

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract writes every paragraph's text followed by a newline, in document order.
func (e *Extractor) Extract(_ context.Context, raw []byte) (domain.ExtractedText, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return domain.ExtractedText{}, &domain.ExtractionError{Format: domain.FileTypeDOCX, Cause: err}
	}
	defer doc.Close()

	paragraphs, err := readParagraphs(doc.Editable().GetContent())
	if err != nil {
		return domain.ExtractedText{}, &domain.ExtractionError{Format: domain.FileTypeDOCX, Cause: err}
	}

	var textBuilder strings.Builder
	for _, paragraph := range paragraphs {
		textBuilder.WriteString(paragraph)
		textBuilder.WriteByte('\n')
	}
	return domain.ExtractedText{
		Text:  textBuilder.String(),
		Units: len(paragraphs),
	}, nil
}

// readParagraphs walks word/document.xml and returns the direct paragraphs of
// w:body. Table cells and content controls are skipped; paragraphs nested in a
// body paragraph (text boxes) are folded into it.
func readParagraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		current    strings.Builder
		elements   []string
		paraDepth  int
		runDepth   int
		inText     bool
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if len(elements) > 0 {
				parent = elements[len(elements)-1]
			}
			elements = append(elements, t.Name.Local)

			switch t.Name.Local {
			case "p":
				if paraDepth > 0 || parent == "body" {
					paraDepth++
				}
			case "r":
				runDepth++
			case "t":
				inText = paraDepth > 0 && runDepth > 0
			case "tab":
				if paraDepth > 0 && runDepth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if paraDepth > 0 && runDepth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if len(elements) > 0 {
				elements = elements[:len(elements)-1]
			}

			switch t.Name.Local {
			case "p":
				if paraDepth == 0 {
					continue
				}
				paraDepth--
				if paraDepth == 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
