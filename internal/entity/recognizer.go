package entity

import (
	"regexp"
	"strings"
	"sync"

	"github.com/jdkato/prose/chunk"
	"github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"
)

// Entity labels.
const (
	LabelOrganization = "ORG"
	LabelPlace        = "GPE"
)

// Span is a named-entity mention found by a Recognizer.
type Span struct {
	Text  string
	Label string
}

// Recognizer finds named-entity spans in text.
type Recognizer interface {
	Recognize(text string) []Span
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(text string) []Span

// Recognize implements Recognizer.
func (f RecognizerFunc) Recognize(text string) []Span { return f(text) }

// namedEntityChunks extends chunk.TreebankNamedEntities so that proper-noun
// runs joined by a preposition and an article ("Office of the United
// Nations") form one chunk.
var namedEntityChunks = regexp.MustCompile(
	`((CD__)*(NNP.)+(CD__|NNP.)*)+` +
		`((IN__)*(CD__)*(NNP.)+(CD__|NNP.)*|(IN__)+DT__(CD__)*(NNP.)+(CD__|NNP.)*)*`)

// ProseRecognizer chunks runs of proper nouns from a part-of-speech tagged
// text. Chunks naming a known country are labelled as places, every other
// chunk as an organization.
type ProseRecognizer struct {
	words     *tokenize.TreebankWordTokenizer
	countries map[string]struct{}
	taggers   sync.Pool

	// chunk.Locate toggles leftmost-longest on the shared regexp.
	chunkMu sync.Mutex
}

// NewProseRecognizer creates a recognizer. Tagger models are loaded lazily,
// one per concurrent caller.
func NewProseRecognizer(countries []string) *ProseRecognizer {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[strings.ToLower(c)] = struct{}{}
	}
	return &ProseRecognizer{
		words:     tokenize.NewTreebankWordTokenizer(),
		countries: set,
		taggers: sync.Pool{
			New: func() any { return tag.NewPerceptronTagger() },
		},
	}
}

// Recognize implements Recognizer.
func (r *ProseRecognizer) Recognize(text string) []Span {
	tokens := r.words.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	tagger := r.taggers.Get().(*tag.PerceptronTagger)
	tagged := tagger.Tag(tokens)
	r.taggers.Put(tagger)

	r.chunkMu.Lock()
	chunks := chunk.Chunk(tagged, namedEntityChunks)
	r.chunkMu.Unlock()

	var spans []Span
	for _, c := range chunks {
		label := LabelOrganization
		name := strings.ToLower(c)
		name = strings.TrimPrefix(name, "the ")
		if _, ok := r.countries[name]; ok {
			label = LabelPlace
		}
		spans = append(spans, Span{Text: c, Label: label})
	}
	return spans
}
