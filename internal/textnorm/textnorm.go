// Package textnorm derives the normalized text forms used by the
// paragraph annotators.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/tokenize"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// stripped is the punctuation removed before tokenization; digits go too.
const stripped = "(),:;?@{|}~."

var (
	nonPrintable = runes.Predicate(func(r rune) bool {
		if r >= 0x20 && r <= 0x7e {
			return false
		}
		switch r {
		case '\t', '\n', '\r', '\v', '\f':
			return false
		}
		return true
	})
	strippable = runes.Predicate(func(r rune) bool {
		return (r >= '0' && r <= '9') || strings.ContainsRune(stripped, r)
	})

	shortNumber = regexp.MustCompile(`[0-9]{1,2}.`)
	cleanSpacer = strings.NewReplacer(",", ", ", ";", "; ", ".", ". ")
)

// Forms holds the normalized views of a paragraph's content.
type Forms struct {
	// Stripped is the printable content without punctuation or digits,
	// original case preserved.
	Stripped string
	// Tokens are the lowercased word tokens of Stripped.
	Tokens []string
	// Padded is the tokens joined by single spaces with a leading and
	// trailing space.
	Padded string
}

// Normalizer tokenizes text. Safe for concurrent use.
type Normalizer struct {
	words *tokenize.TreebankWordTokenizer
}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{words: tokenize.NewTreebankWordTokenizer()}
}

// Words splits text into Treebank word tokens without changing case.
func (n *Normalizer) Words(text string) []string {
	return n.words.Tokenize(text)
}

// Normalize computes the token forms of raw paragraph content.
func (n *Normalizer) Normalize(raw string) Forms {
	s := Printable(strings.ReplaceAll(raw, "\t", " "))
	s, _, _ = transform.String(runes.Remove(strippable), s)

	tokens := n.Words(strings.ToLower(s))
	return Forms{
		Stripped: s,
		Tokens:   tokens,
		Padded:   " " + strings.Join(tokens, " ") + " ",
	}
}

// Alpha returns the alphabetic form used for taxonomy matching: lowercase
// word tokens longer than one character made only of letters.
func (n *Normalizer) Alpha(raw string) (string, []string) {
	text := strings.ReplaceAll(strings.ToLower(raw), "\t", " ")
	var words []string
	for _, w := range n.Words(text) {
		if utf8.RuneCountInString(w) > 1 && isAlpha(w) {
			words = append(words, w)
		}
	}
	return strings.Join(words, " "), words
}

// Printable drops every character outside printable ASCII and ASCII
// whitespace.
func Printable(s string) string {
	out, _, err := transform.String(runes.Remove(nonPrintable), s)
	if err != nil {
		return s
	}
	return out
}

// Clean returns the clean form used for entity matching: punctuation is
// followed by a space, short numbers and words containing digits are
// removed, and whitespace is collapsed.
func Clean(raw string) string {
	s := strings.ReplaceAll(raw, "\t", " ")
	s = cleanSpacer.Replace(s)
	s = shortNumber.ReplaceAllString(s, " ")
	s = Printable(s)

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, w := range fields {
		if strings.IndexFunc(w, unicode.IsDigit) < 0 {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// StartsLowercase reports whether s begins with a lowercase letter.
func StartsLowercase(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsLower(r)
}

// StartsUppercase reports whether s begins with an uppercase letter.
func StartsUppercase(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsUpper(r)
}

func isAlpha(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return w != ""
}
