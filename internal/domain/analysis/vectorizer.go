// Package analysis holds the issue intelligence primitives: the
// deterministic text feature pipeline, the in-memory similarity index,
// and the severity classifier.
package analysis

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const (
	// VectorDims is the fixed embedding dimensionality. Changing it, the
	// tokenizer, or the hashing scheme invalidates every previously
	// derived vector, so the pipeline carries an explicit version.
	VectorDims = 256

	// PipelineVersion identifies the feature pipeline. Vectors from
	// different versions must never be compared.
	PipelineVersion = "v1"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "in": true, "is": true, "it": true,
	"of": true, "on": true, "or": true, "our": true, "that": true,
	"the": true, "this": true, "to": true, "was": true, "we": true,
	"when": true, "will": true, "with": true, "you": true, "your": true,
}

// Vectorizer derives a fixed-dimension embedding from issue text using
// feature hashing over unigrams and word bigrams. The output is
// L2-normalized so cosine similarity reduces to a dot product. The
// pipeline is fully deterministic: identical text always yields an
// identical vector.
type Vectorizer struct {
	dims int
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{dims: VectorDims}
}

func (v *Vectorizer) Dims() int {
	return v.dims
}

func (v *Vectorizer) Version() string {
	return PipelineVersion
}

// Vector derives the embedding for the given text. Empty or
// stopword-only text produces the zero vector, which scores 0 against
// everything.
func (v *Vectorizer) Vector(text string) []float32 {
	vec := make([]float32, v.dims)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for i, tok := range tokens {
		vec[v.bucket(tok)]++
		if i+1 < len(tokens) {
			vec[v.bucket(tok+"_"+tokens[i+1])]++
		}
	}

	normalize(vec)
	return vec
}

func (v *Vectorizer) bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(v.dims))
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func normalize(vec []float32) {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
