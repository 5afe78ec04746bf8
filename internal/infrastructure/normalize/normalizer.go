// Package normalize strips noise from extracted resume text before vectorization.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// whitespaceClass matches what the fitted vocabulary treated as whitespace:
// ASCII \s, the information separators and Unicode separators.
const whitespaceClass = `\t\n\v\f\r \x1c-\x1f\x{85}\p{Z}`

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	urlPattern     = regexp.MustCompile(`http[^` + whitespaceClass + `]+`)
	markerPattern  = regexp.MustCompile(`RT|cc`)
	hashtagPattern = regexp.MustCompile(`#[^` + whitespaceClass + `]+`)
	mentionPattern = regexp.MustCompile(`@[^` + whitespaceClass + `]+`)
	spacePattern   = regexp.MustCompile(`[` + whitespaceClass + `]+`)
)

// URL and marker rules must run before punctuation removal: the punctuation set
// overlaps URL characters.
var rules = []func(string) string{
	replaceWithSpace(urlPattern),
	replaceWithSpace(markerPattern),
	replaceWithSpace(hashtagPattern),
	replaceWithSpace(mentionPattern),
	replacePunctuation,
	replaceNonASCII,
	collapseWhitespace,
}

type Normalizer struct{}

func New() *Normalizer {
	return &Normalizer{}
}

func (*Normalizer) Normalize(text string) string {
	return Clean(text)
}

// Clean applies every rule in order. It never fails and Clean(Clean(s)) == Clean(s).
// Leading and trailing spaces are kept.
func Clean(text string) string {
	for _, rule := range rules {
		text = rule(text)
	}
	return text
}

func replaceWithSpace(re *regexp.Regexp) func(string) string {
	return func(s string) string {
		return re.ReplaceAllLiteralString(s, " ")
	}
}

func replacePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, s)
}

func replaceNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return ' '
		}
		return r
	}, s)
}

func collapseWhitespace(s string) string {
	return spacePattern.ReplaceAllLiteralString(s, " ")
}
