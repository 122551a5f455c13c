package confidence

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/jmorland/voiceloom/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func TestRecordAssignsIDAndRecomputes(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db)

	rec := &database.GenerationRecord{
		UserID:        "alex",
		Prompt:        "morning routine",
		GeneratedText: "Alex had a good morning.",
		StyleMatch:    0.5,
	}
	state, err := tracker.Record(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected an assigned record ID")
	}
	if state.GenerationCount != 1 {
		t.Errorf("expected count 1, got %d", state.GenerationCount)
	}

	// 0.4*0.5 match + 0.4*0.6 default satisfaction + 0.01 experience
	if math.Abs(state.Score-0.45) > 1e-9 {
		t.Errorf("expected score 0.45, got %.4f", state.Score)
	}
	if state.Category != string(CategoryMedium) {
		t.Errorf("expected medium, got %s", state.Category)
	}
}

func TestNewIDUnique(t *testing.T) {
	tracker := NewTracker(openTestDB(t))
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := tracker.NewID()
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestRefreshAfterRating(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db)

	rec := &database.GenerationRecord{UserID: "alex", Prompt: "p", GeneratedText: "g", StyleMatch: 1.0}
	before, err := tracker.Record(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := db.AttachSatisfaction(rec.ID, 5, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := tracker.Refresh("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after.Score <= before.Score {
		t.Errorf("expected a 5/5 rating to raise the score: %.4f -> %.4f", before.Score, after.Score)
	}
}

func TestEvolveFirstSample(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db)

	ev, state, err := tracker.Evolve("alex", "I helped with the morning routine.", ptr("manual"), "initial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ev.PreviousSample != nil {
		t.Error("expected no previous sample on first evolution")
	}
	if ev.ConfidenceBefore != 0 {
		t.Errorf("expected confidence before 0, got %.4f", ev.ConfidenceBefore)
	}
	if ev.TriggerReason != "initial" {
		t.Errorf("expected trigger 'initial', got %q", ev.TriggerReason)
	}
	if state == nil || state.UserID != "alex" {
		t.Error("expected a confidence state for alex")
	}

	sample, err := db.GetWritingSample("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample == nil || sample.SampleText != "I helped with the morning routine." {
		t.Error("expected the sample to be stored")
	}
}

func TestEvolveReplacesSampleAndClearsCache(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db)

	if _, _, err := tracker.Evolve("alex", "first sample text", nil, "initial"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.UpsertProfileCache("alex", "hash1", `{}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, _, err := tracker.Evolve("alex", "second sample text", nil, "manual_update")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ev.PreviousSample == nil || *ev.PreviousSample != "first sample text" {
		t.Error("expected the previous sample to be captured")
	}
	cache, err := db.GetProfileCache("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache != nil {
		t.Error("expected the profile cache to be invalidated")
	}

	evolutions, err := db.GetStyleEvolutions("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evolutions) != 2 {
		t.Fatalf("expected 2 evolution records, got %d", len(evolutions))
	}
	if evolutions[0].NewSample != "second sample text" {
		t.Error("expected the newest evolution first")
	}
}

func TestEvolveRecordsMetrics(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db)

	rec := &database.GenerationRecord{UserID: "alex", Prompt: "p", GeneratedText: "g", StyleMatch: 0.9}
	if _, err := tracker.Record(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, _, err := tracker.Evolve("alex", "new sample", nil, "manual_update")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.RecordsConsidered != 1 {
		t.Errorf("expected 1 record considered, got %d", ev.RecordsConsidered)
	}
	if ev.ImprovementMetrics == nil || *ev.ImprovementMetrics == "" {
		t.Error("expected improvement metrics payload")
	}
}
