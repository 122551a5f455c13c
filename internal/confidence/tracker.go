package confidence

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmorland/voiceloom/internal/database"
)

// Tracker owns the per-user confidence state. Confidence is derived state:
// every write recomputes from the complete record history rather than
// trusting a cached in-memory value, so concurrent generations for the same
// user cannot lose updates as long as they serialize through the per-user
// lock.
type Tracker struct {
	db *database.DB

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex

	entropyMu sync.Mutex
	entropy   *rand.Rand
}

// NewTracker creates a tracker over the given database.
func NewTracker(db *database.DB) *Tracker {
	return &Tracker{
		db:        db,
		userLocks: make(map[string]*sync.Mutex),
		entropy:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (t *Tracker) lockUser(userID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.userLocks[userID] = l
	}
	return l
}

// NewID returns a ULID for a generation or evolution record.
func (t *Tracker) NewID() string {
	t.entropyMu.Lock()
	defer t.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), t.entropy).String()
}

// Record persists a new analytics record and returns the recomputed
// confidence state for the user.
func (t *Tracker) Record(rec *database.GenerationRecord) (*database.ConfidenceState, error) {
	l := t.lockUser(rec.UserID)
	l.Lock()
	defer l.Unlock()

	if rec.ID == "" {
		rec.ID = t.NewID()
	}
	if err := t.db.InsertGenerationRecord(rec); err != nil {
		return nil, fmt.Errorf("storing generation record: %w", err)
	}
	return t.recompute(rec.UserID)
}

// Refresh recomputes confidence after a record was amended in place (a
// rating or edit attached later).
func (t *Tracker) Refresh(userID string) (*database.ConfidenceState, error) {
	l := t.lockUser(userID)
	l.Lock()
	defer l.Unlock()
	return t.recompute(userID)
}

// recompute reads the full history and rewrites the state. Callers hold the
// user lock.
func (t *Tracker) recompute(userID string) (*database.ConfidenceState, error) {
	records, err := t.db.GetGenerationRecords(userID)
	if err != nil {
		return nil, fmt.Errorf("reading generation history: %w", err)
	}

	summary := Summarize(records)
	score := Score(summary)
	state := &database.ConfidenceState{
		UserID:          userID,
		Score:           score,
		Category:        string(Categorize(score)),
		GenerationCount: summary.Count,
	}
	if err := t.db.UpsertConfidenceState(state); err != nil {
		return nil, fmt.Errorf("writing confidence state: %w", err)
	}
	return state, nil
}

// Evolve replaces the user's writing sample and appends a style evolution
// record capturing confidence before and after. The profile cache is
// dropped so the next generation re-extracts from the new sample.
func (t *Tracker) Evolve(userID, newSample string, source *string, triggerReason string) (*database.StyleEvolution, *database.ConfidenceState, error) {
	l := t.lockUser(userID)
	l.Lock()
	defer l.Unlock()

	var previousSample *string
	prior, err := t.db.GetWritingSample(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("reading prior sample: %w", err)
	}
	if prior != nil {
		s := prior.SampleText
		previousSample = &s
	}

	confidenceBefore := 0.0
	if state, err := t.db.GetConfidenceState(userID); err == nil && state != nil {
		confidenceBefore = state.Score
	}

	if err := t.db.UpsertWritingSample(userID, newSample, source); err != nil {
		return nil, nil, fmt.Errorf("storing new sample: %w", err)
	}
	if err := t.db.DeleteProfileCache(userID); err != nil {
		return nil, nil, fmt.Errorf("invalidating profile cache: %w", err)
	}

	state, err := t.recompute(userID)
	if err != nil {
		return nil, nil, err
	}

	records, err := t.db.GetGenerationRecords(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("reading generation history: %w", err)
	}
	summary := Summarize(records)

	metrics, _ := json.Marshal(map[string]any{
		"avg_satisfaction": summary.AvgSatisfaction,
		"avg_style_match":  summary.AvgStyleMatch,
		"rated_count":      summary.RatedCount,
		"scored_count":     summary.ScoredCount,
	})
	metricsJSON := string(metrics)

	ev := &database.StyleEvolution{
		ID:                 t.NewID(),
		UserID:             userID,
		PreviousSample:     previousSample,
		NewSample:          newSample,
		ConfidenceBefore:   confidenceBefore,
		ConfidenceAfter:    state.Score,
		TriggerReason:      triggerReason,
		RecordsConsidered:  summary.Count,
		ImprovementMetrics: &metricsJSON,
	}
	if err := t.db.InsertStyleEvolution(ev); err != nil {
		return nil, nil, fmt.Errorf("appending evolution record: %w", err)
	}
	return ev, state, nil
}
