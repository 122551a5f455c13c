// Package engine exposes the style-personalization core to the surrounding
// system: instruction building, outcome recording, and style evolution.
package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmorland/voiceloom/internal/compose"
	"github.com/jmorland/voiceloom/internal/confidence"
	"github.com/jmorland/voiceloom/internal/database"
	"github.com/jmorland/voiceloom/internal/detail"
	"github.com/jmorland/voiceloom/internal/profile"
	"github.com/jmorland/voiceloom/internal/tone"
	"github.com/jmorland/voiceloom/internal/vocab"
)

// InvalidInputError is the only hard-failure class the engine surfaces. It
// is always caller-correctable: an empty sample or an out-of-range tone.
// Everything else degrades rather than failing, because this code sits in
// the critical path of every generation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Engine wires the extractor, mapper, tone blending, composer, and
// confidence tracker over the store.
type Engine struct {
	db        *database.DB
	extractor *profile.Extractor
	tracker   *confidence.Tracker
}

// New creates an engine with the default lexicon.
func New(db *database.DB) *Engine {
	return &Engine{
		db:        db,
		extractor: profile.NewExtractor(profile.DefaultLexicon()),
		tracker:   confidence.NewTracker(db),
	}
}

// Tracker returns the engine's confidence tracker.
func (e *Engine) Tracker() *confidence.Tracker { return e.tracker }

// BuildInstruction produces the ready-to-send instruction text for a
// generation request. The profile is served from cache when the stored
// sample is unchanged and re-extracted otherwise.
func (e *Engine) BuildInstruction(userID, rawPrompt, taskContext string, toneLevel int, detailLevel string) (string, error) {
	if toneLevel < 0 || toneLevel > 100 {
		return "", &InvalidInputError{Field: "tone level", Reason: fmt.Sprintf("%d outside [0, 100]", toneLevel)}
	}

	sample, err := e.db.GetWritingSample(userID)
	if err != nil {
		return "", fmt.Errorf("reading writing sample: %w", err)
	}
	if sample == nil || sample.SampleText == "" {
		return "", &InvalidInputError{Field: "writing sample", Reason: "no sample stored for user " + userID}
	}

	p, err := e.profileFor(userID, sample.SampleText)
	if err != nil {
		return "", err
	}

	mapping := vocab.BuildMapping(p)
	toneBlock, err := tone.Compose(toneLevel, p, mapping)
	if err != nil {
		var oor *tone.ErrToneOutOfRange
		if errors.As(err, &oor) {
			return "", &InvalidInputError{Field: "tone level", Reason: oor.Error()}
		}
		return "", err
	}

	return compose.Instruction(compose.Request{
		Prompt:      rawPrompt,
		TaskContext: taskContext,
		Sample:      sample.SampleText,
		Profile:     p,
		Tone:        toneBlock,
		Detail:      detail.Instructions(detail.Parse(detailLevel)),
	}), nil
}

// RecordGenerationOutcome persists a fully-populated analytics record and
// returns the recomputed confidence state.
func (e *Engine) RecordGenerationOutcome(rec *database.GenerationRecord) (*database.ConfidenceState, error) {
	if rec.UserID == "" {
		return nil, &InvalidInputError{Field: "analytics record", Reason: "missing user id"}
	}
	return e.tracker.Record(rec)
}

// ApplyStyleEvolution replaces the user's writing sample and returns the
// evolution record plus the updated confidence state.
func (e *Engine) ApplyStyleEvolution(userID, newSample string, source *string, triggerReason string) (*database.StyleEvolution, *database.ConfidenceState, error) {
	if newSample == "" {
		return nil, nil, &InvalidInputError{Field: "writing sample", Reason: "empty"}
	}
	return e.tracker.Evolve(userID, newSample, source, triggerReason)
}

// Profile returns the current profile for a user, extracting if needed.
func (e *Engine) Profile(userID string) (*profile.Profile, error) {
	sample, err := e.db.GetWritingSample(userID)
	if err != nil {
		return nil, fmt.Errorf("reading writing sample: %w", err)
	}
	if sample == nil || sample.SampleText == "" {
		return nil, &InvalidInputError{Field: "writing sample", Reason: "no sample stored for user " + userID}
	}
	return e.profileFor(userID, sample.SampleText)
}

// profileFor serves the cached profile when the sample hash matches, and
// re-extracts and rewrites the cache otherwise. Extraction is deterministic
// so a stale cache is the only reason to recompute.
func (e *Engine) profileFor(userID, sampleText string) (*profile.Profile, error) {
	hash := sampleHash(sampleText)

	cached, err := e.db.GetProfileCache(userID)
	if err != nil {
		return nil, fmt.Errorf("reading profile cache: %w", err)
	}
	if cached != nil && cached.SampleHash == hash {
		var p profile.Profile
		if err := json.Unmarshal([]byte(cached.ProfileJSON), &p); err == nil {
			return &p, nil
		}
		log.Printf("discarding unreadable profile cache for %s", userID)
	}

	p, err := e.extractor.Extract(sampleText)
	if err != nil {
		if errors.Is(err, profile.ErrEmptySample) {
			return nil, &InvalidInputError{Field: "writing sample", Reason: "empty"}
		}
		return nil, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	if err := e.db.UpsertProfileCache(userID, hash, string(data)); err != nil {
		return nil, fmt.Errorf("writing profile cache: %w", err)
	}
	return p, nil
}

func sampleHash(sample string) string {
	sum := sha256.Sum256([]byte(sample))
	return hex.EncodeToString(sum[:])
}
