// Package embedding provides read-only word-vector lookup and the vector
// arithmetic used for semantic similarity.
package embedding

import (
	"math"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Vector is a dense word or phrase embedding. A nil Vector means absent.
type Vector []float32

// Lookup resolves a word to its embedding.
type Lookup interface {
	Vector(word string) (Vector, bool)
}

// Store is an in-memory Lookup.
type Store struct {
	dim     int
	vectors map[string]Vector
}

// NewStore creates an empty store for vectors of the given dimension.
func NewStore(dim int) *Store {
	return &Store{dim: dim, vectors: make(map[string]Vector)}
}

// Add inserts or replaces the vector for word. Vectors of the wrong
// dimension are ignored.
func (s *Store) Add(word string, v Vector) {
	if len(v) != s.dim {
		return
	}
	s.vectors[word] = v
}

// Vector implements Lookup.
func (s *Store) Vector(word string) (Vector, bool) {
	v, ok := s.vectors[word]
	return v, ok
}

// Dim returns the vector dimension.
func (s *Store) Dim() int { return s.dim }

// Len returns the number of words in the store.
func (s *Store) Len() int { return len(s.vectors) }

// Known returns the words that have a vector, in input order.
func Known(l Lookup, words []string) []string {
	var out []string
	for _, w := range words {
		if _, ok := l.Vector(w); ok {
			out = append(out, w)
		}
	}
	return out
}

// Sum adds the vectors of all in-vocabulary words. It returns false when no
// word has a vector.
func Sum(l Lookup, words []string) (Vector, bool) {
	var sum Vector
	for _, w := range words {
		v, ok := l.Vector(w)
		if !ok {
			continue
		}
		if sum == nil {
			sum = make(Vector, len(v))
		}
		for i := range v {
			sum[i] += v[i]
		}
	}
	return sum, sum != nil
}

// Cosine returns the cosine similarity of a and b, or 0 when either is
// absent, zero, or the dimensions differ.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Cached memoizes phrase sums on top of a Lookup. Safe for concurrent use.
type Cached struct {
	Lookup
	phrases *gocache.Cache
}

// NewCached wraps l with a phrase-vector memo. A ttl of 0 keeps entries for
// the life of the process.
func NewCached(l Lookup, ttl time.Duration) *Cached {
	expiry := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiry = ttl
		cleanup = 2 * ttl
	}
	return &Cached{Lookup: l, phrases: gocache.New(expiry, cleanup)}
}

type phrase struct {
	v  Vector
	ok bool
}

// Sum is the memoized form of the package-level Sum.
func (c *Cached) Sum(words []string) (Vector, bool) {
	key := strings.Join(words, " ")
	if hit, found := c.phrases.Get(key); found {
		p := hit.(phrase)
		return p.v, p.ok
	}
	v, ok := Sum(c.Lookup, words)
	c.phrases.Set(key, phrase{v: v, ok: ok}, gocache.DefaultExpiration)
	return v, ok
}

// Phrases returns the number of memoized phrases.
func (c *Cached) Phrases() int { return c.phrases.ItemCount() }
