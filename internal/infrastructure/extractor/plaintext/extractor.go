package plaintext

import (
	"context"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract decodes raw as UTF-8 and falls back to Latin-1, which maps every byte.
func (e *Extractor) Extract(_ context.Context, raw []byte) (domain.ExtractedText, error) {
	if utf8.Valid(raw) {
		return domain.ExtractedText{Text: string(raw), Units: 1}, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrDecode, "decode latin-1", err)
	}
	return domain.ExtractedText{
		Text:     string(decoded),
		Units:    1,
		Warnings: []string{"text is not valid utf-8, decoded as latin-1"},
	}, nil
}
