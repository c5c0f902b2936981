package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashDimensions is the vector size produced by HashProvider
const HashDimensions = 256

var hashStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "of": true, "in": true,
	"on": true, "for": true, "to": true, "with": true, "at": true, "or": true,
	"is": true, "are": true, "be": true, "as": true, "by": true, "from": true,
	"years": true, "year": true, "experience": true, "plus": true,
}

// HashProvider is an offline, deterministic provider based on feature hashing of word tokens.
// It needs no credentials and is useful for local runs and tests; it captures lexical
// overlap only.
type HashProvider struct {
	dims int
}

// NewHashProvider creates a hashing provider with HashDimensions dimensions
func NewHashProvider() *HashProvider {
	return &HashProvider{dims: HashDimensions}
}

// ModelID identifies the hashing scheme
func (p *HashProvider) ModelID() string {
	return fmt.Sprintf("hash-v1-%d", p.dims)
}

// Embed hashes each token of text into a bucket and L2-normalizes the counts.
// Text with no usable tokens yields the zero vector.
func (p *HashProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, p.dims)
	for _, token := range hashTokens(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32()%uint32(p.dims))]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

func hashTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if hashStopwords[f] || isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '+' {
			return false
		}
	}
	return s != ""
}

// EmbedBatch embeds each text in order
func (p *HashProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}
