// Package tfidf provides an in-memory TF-IDF index over corpus segments.
//
// The vocabulary and inverse document frequencies are frozen when the index
// is built; queries are projected into that space and ranked by cosine
// similarity.
package tfidf

import (
	"cmp"
	"context"
	"maps"
	"math"
	"slices"

	"github.com/fwojciec/docbot"
)

// DefaultMaxDF is the document-frequency ratio above which a term is
// considered too common to be useful.
const DefaultMaxDF = 0.9

// Ensure Index implements docbot.Searcher at compile time.
var _ docbot.Searcher = (*Index)(nil)

// Options configures index construction.
type Options struct {
	// StopWords are excluded from the vocabulary.
	StopWords []string

	// MaxDF drops terms appearing in more than this fraction of segments.
	// Values outside (0, 1) disable pruning.
	MaxDF float64
}

// DefaultOptions returns English stop words and a MaxDF of 0.9.
func DefaultOptions() Options {
	words, _ := StopWords("en")
	return Options{StopWords: words, MaxDF: DefaultMaxDF}
}

// vector is a sparse L2-normalized term weight vector keyed by term ID.
// Sums over a vector run in term ID order so scores are reproducible.
type vector map[int]float64

// Index is a read-only TF-IDF index. It is safe for concurrent queries.
type Index struct {
	segments []docbot.Segment
	vocab    map[string]int
	idf      []float64
	vectors  []vector
	stop     map[string]struct{}
}

// Build indexes segments. An empty segment list produces an empty index
// whose searches return no results.
func Build(segments []docbot.Segment, opts Options) *Index {
	idx := &Index{
		segments: segments,
		vocab:    make(map[string]int),
		stop:     make(map[string]struct{}, len(opts.StopWords)),
	}
	for _, w := range opts.StopWords {
		idx.stop[w] = struct{}{}
	}

	n := len(segments)
	if n == 0 {
		return idx
	}

	docs := make([][]string, n)
	df := make(map[string]int)
	for i, seg := range segments {
		docs[i] = idx.terms(seg.Text)
		seen := make(map[string]struct{})
		for _, term := range docs[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	if opts.MaxDF > 0 && opts.MaxDF < 1 {
		limit := opts.MaxDF * float64(n)
		for term, count := range df {
			if float64(count) <= limit {
				terms = append(terms, term)
			}
		}
	}
	// Keep every term rather than leave the index without a vocabulary.
	if len(terms) == 0 {
		for term := range df {
			terms = append(terms, term)
		}
	}
	slices.Sort(terms)

	idx.idf = make([]float64, len(terms))
	for id, term := range terms {
		idx.vocab[term] = id
		idx.idf[id] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	idx.vectors = make([]vector, n)
	for i, doc := range docs {
		idx.vectors[i] = idx.vectorize(doc)
	}

	return idx
}

// Len returns the number of indexed segments.
func (idx *Index) Len() int {
	return len(idx.segments)
}

// Empty reports whether the index holds no segments.
func (idx *Index) Empty() bool {
	return len(idx.segments) == 0
}

// VocabularySize returns the number of terms in the frozen vocabulary.
func (idx *Index) VocabularySize() int {
	return len(idx.vocab)
}

// Search returns the topK segments ranked by cosine similarity to query, or
// every segment when topK exceeds the corpus size. A query sharing no
// vocabulary with the corpus returns no results. Equal scores keep corpus
// order, so zero-score segments trail in corpus order.
func (idx *Index) Search(ctx context.Context, query string, topK int) ([]docbot.ScoredResult, error) {
	if idx.Empty() {
		return nil, nil
	}
	if topK < 1 {
		return nil, docbot.Errorf(docbot.EINVALID, "top_k must be at least 1, got %d", topK)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := idx.vectorize(idx.terms(query))
	if len(q) == 0 {
		return nil, nil
	}

	type hit struct {
		pos   int
		score float64
	}
	hits := make([]hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = hit{pos: i, score: min(dot(q, v), 1)}
	}
	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	results := make([]docbot.ScoredResult, len(hits))
	for i, h := range hits {
		seg := idx.segments[h.pos]
		results[i] = docbot.ScoredResult{
			Title: seg.Title,
			URL:   seg.URL,
			Text:  docbot.Excerpt(seg.Text, docbot.DefaultExcerptLength),
			Score: math.Round(h.score*1e4) / 1e4,
		}
	}
	return results, nil
}

// terms tokenizes text and removes stop words.
func (idx *Index) terms(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, tok := range tokens {
		if _, ok := idx.stop[tok]; !ok {
			out = append(out, tok)
		}
	}
	return out
}

// vectorize weights in-vocabulary terms by raw frequency times idf and
// normalizes the result to unit length.
func (idx *Index) vectorize(terms []string) vector {
	v := make(vector)
	for _, term := range terms {
		if id, ok := idx.vocab[term]; ok {
			v[id] += idx.idf[id]
		}
	}

	var norm float64
	for _, id := range slices.Sorted(maps.Keys(v)) {
		norm += v[id] * v[id]
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for id := range v {
		v[id] /= norm
	}
	return v
}

func dot(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var s float64
	for _, id := range slices.Sorted(maps.Keys(a)) {
		s += a[id] * b[id]
	}
	return s
}
