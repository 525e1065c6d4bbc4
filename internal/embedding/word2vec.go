package embedding

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Format is the on-disk layout of a word2vec model.
type Format string

const (
	FormatAuto   Format = ""
	FormatBinary Format = "binary"
	FormatText   Format = "text"
)

// ErrBadHeader is returned when a model does not start with "<count> <dim>".
var ErrBadHeader = errors.New("word2vec: malformed header")

type loadOptions struct {
	format Format
	keep   func(word string) bool
}

// LoadOption configures LoadWord2Vec.
type LoadOption func(*loadOptions)

// WithFormat forces the model format instead of guessing from the file name.
func WithFormat(f Format) LoadOption {
	return func(o *loadOptions) { o.format = f }
}

// WithVocabulary keeps only the listed words, which bounds memory when the
// model is much larger than the corpus.
func WithVocabulary(words map[string]struct{}) LoadOption {
	return func(o *loadOptions) {
		o.keep = func(w string) bool {
			_, ok := words[w]
			return ok
		}
	}
}

// LoadWord2Vec reads a word2vec model. Files ending in .gz are decompressed;
// files ending in .txt or .vec (before .gz) are read as text, others as the
// binary format.
func LoadWord2Vec(path string, opts ...LoadOption) (*Store, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening embeddings: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	format := o.format
	if format == FormatAuto {
		format = FormatBinary
		if strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".vec") {
			format = FormatText
		}
	}

	br := bufio.NewReaderSize(r, 1<<20)
	switch format {
	case FormatText:
		return readText(br, o.keep)
	case FormatBinary:
		return readBinary(br, o.keep)
	default:
		return nil, fmt.Errorf("unknown embeddings format %q", format)
	}
}

func readHeader(line string) (count, dim int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, ErrBadHeader
	}
	if count, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, ErrBadHeader
	}
	if dim, err = strconv.Atoi(fields[1]); err != nil || dim <= 0 {
		return 0, 0, ErrBadHeader
	}
	return count, dim, nil
}

func readBinary(r *bufio.Reader, keep func(string) bool) (*Store, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	count, dim, err := readHeader(header)
	if err != nil {
		return nil, err
	}

	store := NewStore(dim)
	raw := make([]byte, 4*dim)
	for i := 0; i < count; i++ {
		word, err := r.ReadString(' ')
		if err != nil {
			if errors.Is(err, io.EOF) && strings.TrimSpace(word) == "" {
				break
			}
			return nil, fmt.Errorf("reading word %d: %w", i, err)
		}
		word = strings.TrimLeft(strings.TrimSuffix(word, " "), "\n")

		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("reading vector for %q: %w", word, err)
		}
		if keep != nil && !keep(word) {
			continue
		}
		v := make(Vector, dim)
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*j:]))
		}
		store.Add(word, v)
	}
	return store, nil
}

func readText(r *bufio.Reader, keep func(string) bool) (*Store, error) {
	var store *Store
	line := 0
	for {
		text, err := r.ReadString('\n')
		if text != "" {
			line++
			fields := strings.Fields(text)
			switch {
			case line == 1 && len(fields) == 2:
				_, dim, herr := readHeader(text)
				if herr != nil {
					return nil, herr
				}
				store = NewStore(dim)
			case len(fields) >= 2:
				if store == nil {
					store = NewStore(len(fields) - 1)
				}
				dim := store.Dim()
				if len(fields) < dim+1 {
					return nil, fmt.Errorf("line %d: expected %d values, got %d", line, dim, len(fields)-1)
				}
				word := strings.Join(fields[:len(fields)-dim], " ")
				if keep != nil && !keep(word) {
					break
				}
				v := make(Vector, dim)
				for j, s := range fields[len(fields)-dim:] {
					x, perr := strconv.ParseFloat(s, 32)
					if perr != nil {
						return nil, fmt.Errorf("line %d: %w", line, perr)
					}
					v[j] = float32(x)
				}
				store.Add(word, v)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading embeddings: %w", err)
		}
	}
	if store == nil {
		return nil, ErrBadHeader
	}
	return store, nil
}
