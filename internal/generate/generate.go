// Package generate runs the per-request flow: build the instruction, call
// the external generator, score the result, and feed the analytics trail.
package generate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmorland/voiceloom/internal/config"
	"github.com/jmorland/voiceloom/internal/database"
	"github.com/jmorland/voiceloom/internal/engine"
	"github.com/jmorland/voiceloom/internal/llm"
	"github.com/jmorland/voiceloom/internal/stylematch"
)

// Request is one documentation-expansion request.
type Request struct {
	UserID      string
	SectionID   string
	Prompt      string
	TaskContext string
	ToneLevel   int
	DetailLevel string
}

// Result is the generated text plus the analytics written for it.
type Result struct {
	Record *database.GenerationRecord
	State  *database.ConfidenceState
}

// Service orchestrates the engine, the generator boundary, and the scorer.
type Service struct {
	db        *database.DB
	engine    *engine.Engine
	provider  llm.Provider
	scorer    *stylematch.Scorer
	maxTokens int
}

// New creates a generation service from configuration.
func New(cfg *config.Config, db *database.DB, eng *engine.Engine) *Service {
	gen := cfg.Generator
	provider := llm.CreateProvider(
		gen.Provider,
		gen.Model,
		gen.OllamaURL,
		gen.OpenAIModel,
		gen.APIKeyEnv,
	)

	var embedder llm.Embedder
	if gen.EmbeddingModel != "" {
		embedder = llm.NewOllamaEmbedder(gen.EmbeddingModel, gen.OllamaURL)
	}

	return &Service{
		db:        db,
		engine:    eng,
		provider:  provider,
		scorer:    stylematch.NewScorer(embedder),
		maxTokens: gen.MaxTokens,
	}
}

// NewWithProvider creates a service with an explicit provider and scorer,
// used by tests and by callers that manage their own boundary.
func NewWithProvider(db *database.DB, eng *engine.Engine, provider llm.Provider, scorer *stylematch.Scorer, maxTokens int) *Service {
	return &Service{
		db:        db,
		engine:    eng,
		provider:  provider,
		scorer:    scorer,
		maxTokens: maxTokens,
	}
}

// Generate expands a prompt into documentation and records the outcome.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no generator available")
	}

	instruction, err := s.engine.BuildInstruction(req.UserID, req.Prompt, req.TaskContext, req.ToneLevel, req.DetailLevel)
	if err != nil {
		return nil, err
	}

	gen, err := s.provider.Generate(ctx, instruction, s.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("generating text: %w", err)
	}

	p, err := s.engine.Profile(req.UserID)
	if err != nil {
		return nil, err
	}
	sample, err := s.db.GetWritingSample(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("reading writing sample: %w", err)
	}

	styleMatch := s.scorer.Score(ctx, p, sample.SampleText, gen.Text)

	priorConfidence := 0.0
	if state, err := s.db.GetConfidenceState(req.UserID); err == nil && state != nil {
		priorConfidence = state.Score
	}

	rec := &database.GenerationRecord{
		UserID:        req.UserID,
		Prompt:        req.Prompt,
		GeneratedText: gen.Text,
		Confidence:    priorConfidence,
		TokensUsed:    gen.TokensUsed,
		DurationMs:    gen.Duration.Milliseconds(),
		StyleMatch:    styleMatch,
	}
	if req.SectionID != "" {
		sid := req.SectionID
		rec.SectionID = &sid
	}

	state, err := s.engine.RecordGenerationOutcome(rec)
	if err != nil {
		return nil, err
	}

	log.Printf("Generated %d words for %s (style match %.2f, confidence %.2f %s)",
		len(strings.Fields(gen.Text)), req.UserID, styleMatch, state.Score, state.Category)
	return &Result{Record: rec, State: state}, nil
}
