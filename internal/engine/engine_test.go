package engine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmorland/voiceloom/internal/database"
)

const sampleText = "I helped John with his morning routine. He did really well and we finished the cleaning by lunchtime. Then we went to the shops and he picked his own snacks."

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestEngine(t *testing.T) (*Engine, *database.DB) {
	t.Helper()
	db := openTestDB(t)
	eng := New(db)
	if err := db.UpsertWritingSample("alex", sampleText, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return eng, db
}

func TestBuildInstruction(t *testing.T) {
	eng, _ := newTestEngine(t)

	got, err := eng.BuildInstruction("alex", "helped with breakfast", "daily notes", 0, "moderate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"helped with breakfast",
		"daily notes",
		"Writer's style profile",
		"Length: 60-120 words",
		sampleText,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected instruction to contain %q", want)
		}
	}
}

func TestBuildInstructionNoSample(t *testing.T) {
	db := openTestDB(t)
	eng := New(db)

	_, err := eng.BuildInstruction("nobody", "prompt", "", 30, "brief")
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if invalid.Field != "writing sample" {
		t.Errorf("expected writing sample field, got %q", invalid.Field)
	}
}

func TestBuildInstructionToneOutOfRange(t *testing.T) {
	eng, _ := newTestEngine(t)

	for _, level := range []int{-5, 101} {
		_, err := eng.BuildInstruction("alex", "prompt", "", level, "brief")
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("expected InvalidInputError for tone %d, got %v", level, err)
		}
	}
}

func TestBuildInstructionUnknownDetailDefaultsToBrief(t *testing.T) {
	eng, _ := newTestEngine(t)

	got, err := eng.BuildInstruction("alex", "prompt", "", 30, "nonsense")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Length: 30-60 words") {
		t.Error("expected brief length band for unknown detail level")
	}
}

func TestProfileCaching(t *testing.T) {
	eng, db := newTestEngine(t)

	first, err := eng.Profile("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache, err := db.GetProfileCache("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache == nil {
		t.Fatal("expected a profile cache entry after extraction")
	}

	second, err := eng.Profile("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Tone != second.Tone || first.WordCount != second.WordCount {
		t.Error("expected cached profile to match the extracted one")
	}
}

func TestProfileCacheInvalidatedBySampleChange(t *testing.T) {
	eng, db := newTestEngine(t)

	if _, err := eng.Profile("alex"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stale, _ := db.GetProfileCache("alex")

	newSample := "The individual participated in the morning program and demonstrated appropriate conduct. The individual completed all assigned tasks independently and was observed throughout."
	if _, _, err := eng.ApplyStyleEvolution("alex", newSample, nil, "manual_update"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := eng.Profile("alex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(p.Tone) != "formal" {
		t.Errorf("expected re-extraction from the new sample, got tone %s", p.Tone)
	}

	fresh, _ := db.GetProfileCache("alex")
	if fresh == nil || fresh.SampleHash == stale.SampleHash {
		t.Error("expected the cache to be rebuilt for the new sample")
	}
}

func TestRecordGenerationOutcomeRequiresUser(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.RecordGenerationOutcome(&database.GenerationRecord{Prompt: "p", GeneratedText: "g"})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
}

func TestApplyStyleEvolutionRejectsEmptySample(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, _, err := eng.ApplyStyleEvolution("alex", "", nil, "manual_update")
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
}
