// Package stylematch scores how closely generated text matches a user's
// writing sample, in [0, 1].
package stylematch

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/jmorland/voiceloom/internal/llm"
	"github.com/jmorland/voiceloom/internal/profile"
)

// Scorer computes style-match scores. With an embedder it uses cosine
// similarity between the sample and the output; without one, or when the
// embed call fails, it degrades to a deterministic lexical score so the
// generation path never hard-fails on scoring.
type Scorer struct {
	embedder llm.Embedder
}

// NewScorer creates a scorer. A nil embedder is allowed.
func NewScorer(embedder llm.Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score computes the style-match score for generated output.
func (s *Scorer) Score(ctx context.Context, p *profile.Profile, sample, output string) float64 {
	if s.embedder != nil {
		score, err := s.embeddingScore(ctx, sample, output)
		if err == nil {
			return score
		}
		log.Printf("embedding style match unavailable, using lexical score: %v", err)
	}
	return LexicalScore(p, output)
}

func (s *Scorer) embeddingScore(ctx context.Context, sample, output string) (float64, error) {
	embeddings, err := s.embedder.Embed(ctx, []string{sample, output})
	if err != nil {
		return 0, err
	}
	if len(embeddings) < 2 {
		return 0, errShortEmbedding
	}
	return clamp01(cosine(embeddings[0], embeddings[1])), nil
}

var errShortEmbedding = errorString("embedder returned fewer than two vectors")

type errorString string

func (e errorString) Error() string { return string(e) }

// LexicalScore measures what share of the profile's characteristic
// vocabulary appears in the output. It is a pure function of its inputs.
func LexicalScore(p *profile.Profile, output string) float64 {
	vocabulary := make([]string, 0,
		len(p.ActionVerbs)+len(p.Descriptors)+len(p.Transitions)+len(p.NaturalExpressions))
	vocabulary = append(vocabulary, p.ActionVerbs...)
	vocabulary = append(vocabulary, p.Descriptors...)
	vocabulary = append(vocabulary, p.Transitions...)
	vocabulary = append(vocabulary, p.NaturalExpressions...)

	if len(vocabulary) == 0 {
		return 0.5
	}

	lower := strings.ToLower(output)
	hits := 0
	for _, term := range vocabulary {
		if containsWord(lower, term) {
			hits++
		}
	}
	return clamp01(float64(hits) / float64(len(vocabulary)))
}

// containsWord reports whether term occurs in text on word boundaries.
func containsWord(text, term string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '\''
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
