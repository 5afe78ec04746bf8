// Package tfidf applies a fitted TF-IDF vocabulary to new text.
package tfidf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"
)

const Kind = "tfidf"

// Vector is a sparse feature vector with strictly increasing indices.
type Vector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

func (v Vector) Len() int {
	return len(v.Indices)
}

// Params is the serialized form of a fitted vectorizer.
type Params struct {
	Kind        string         `json:"kind"`
	Lowercase   *bool          `json:"lowercase,omitempty"`
	NgramRange  [2]int         `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	UseIDF      *bool          `json:"use_idf,omitempty"`
	Norm        string         `json:"norm"`
	StopWords   []string       `json:"stop_words,omitempty"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf,omitempty"`
}

// Vectorizer is read-only after construction and safe for concurrent use.
type Vectorizer struct {
	lowercase   bool
	minN, maxN  int
	sublinearTF bool
	useIDF      bool
	norm        string
	stopWords   map[string]struct{}
	vocabulary  map[string]int
	idf         []float64
	numFeatures int
}

func Decode(r io.Reader) (*Vectorizer, error) {
	var params Params
	if err := json.NewDecoder(r).Decode(&params); err != nil {
		return nil, fmt.Errorf("decode tfidf params: %w", err)
	}
	return New(params)
}

func New(params Params) (*Vectorizer, error) {
	if params.Kind != "" && params.Kind != Kind {
		return nil, fmt.Errorf("unexpected vectorizer kind %q", params.Kind)
	}
	if len(params.Vocabulary) == 0 {
		return nil, errors.New("vocabulary is empty")
	}

	minN, maxN := params.NgramRange[0], params.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram_range [%d, %d]", minN, maxN)
	}

	norm := strings.ToLower(params.Norm)
	switch norm {
	case "":
		norm = "l2"
	case "l1", "l2", "none":
	default:
		return nil, fmt.Errorf("unsupported norm %q", params.Norm)
	}

	useIDF := params.UseIDF == nil || *params.UseIDF
	numFeatures := 0
	for term, idx := range params.Vocabulary {
		if idx < 0 {
			return nil, fmt.Errorf("term %q has negative index %d", term, idx)
		}
		if idx+1 > numFeatures {
			numFeatures = idx + 1
		}
	}
	if useIDF {
		if len(params.IDF) < numFeatures {
			return nil, fmt.Errorf("idf has %d weights, vocabulary needs %d", len(params.IDF), numFeatures)
		}
		numFeatures = len(params.IDF)
	}

	stopWords := make(map[string]struct{}, len(params.StopWords))
	for _, word := range params.StopWords {
		stopWords[word] = struct{}{}
	}

	return &Vectorizer{
		lowercase:   params.Lowercase == nil || *params.Lowercase,
		minN:        minN,
		maxN:        maxN,
		sublinearTF: params.SublinearTF,
		useIDF:      useIDF,
		norm:        norm,
		stopWords:   stopWords,
		vocabulary:  params.Vocabulary,
		idf:         params.IDF,
		numFeatures: numFeatures,
	}, nil
}

// NumFeatures is the width of every vector produced by Transform.
func (v *Vectorizer) NumFeatures() int {
	return v.numFeatures
}

// Terms returns the vocabulary ordered by feature index.
func (v *Vectorizer) Terms() []string {
	terms := make([]string, v.numFeatures)
	for term, idx := range v.vocabulary {
		terms[idx] = term
	}
	return terms
}

// IDF returns the weight of feature idx, or 1 when the vectorizer has no IDF.
func (v *Vectorizer) IDF(idx int) float64 {
	if !v.useIDF || idx < 0 || idx >= len(v.idf) {
		return 1
	}
	return v.idf[idx]
}

// Transform maps text onto the fitted vocabulary. Terms outside it are dropped.
func (v *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]float64, 64)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		tf := counts[idx]
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		values[i] = tf * v.IDF(idx)
	}
	normalize(values, v.norm)

	return Vector{Indices: indices, Values: values}
}

func (v *Vectorizer) analyze(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	tokens := tokenize(text)
	if len(v.stopWords) > 0 {
		kept := tokens[:0]
		for _, token := range tokens {
			if _, stop := v.stopWords[token]; !stop {
				kept = append(kept, token)
			}
		}
		tokens = kept
	}
	if v.minN == 1 && v.maxN == 1 {
		return tokens
	}

	terms := make([]string, 0, len(tokens)*(v.maxN-v.minN+1))
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// tokenize returns every maximal run of word runes (letters, numbers, underscore)
// that is at least two runes long.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 32)
	var (
		b     strings.Builder
		runes int
	)
	flush := func() {
		if runes >= 2 {
			out = append(out, b.String())
		}
		b.Reset()
		runes = 0
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			b.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return out
}

func normalize(values []float64, norm string) {
	var total float64
	switch norm {
	case "l2":
		for _, value := range values {
			total += value * value
		}
		total = math.Sqrt(total)
	case "l1":
		for _, value := range values {
			total += math.Abs(value)
		}
	default:
		return
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
