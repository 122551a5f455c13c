package vocab

import (
	"testing"

	"github.com/jmorland/voiceloom/internal/profile"
)

func TestBuildMappingTotal(t *testing.T) {
	m := BuildMapping(&profile.Profile{})
	if len(m.Entries) != len(clinicalTerms) {
		t.Fatalf("expected %d entries, got %d", len(clinicalTerms), len(m.Entries))
	}
	for _, e := range m.Entries {
		if e.Clinical == "" || e.Natural == "" {
			t.Errorf("expected non-empty entry, got %+v", e)
		}
	}
}

func TestBuildMappingPrefersProfileVocabulary(t *testing.T) {
	p := &profile.Profile{
		ActionVerbs: []string{"did", "tried"},
	}
	m := BuildMapping(p)

	// "completed" prefers "finished", but only "did" is in the profile.
	if got := naturalFor(m, "completed"); got != "did" {
		t.Errorf("expected completed -> did, got %q", got)
	}
	if got := naturalFor(m, "engaged in"); got != "did" {
		t.Errorf("expected engaged in -> did, got %q", got)
	}
}

func TestBuildMappingFallback(t *testing.T) {
	m := BuildMapping(&profile.Profile{})
	if got := naturalFor(m, "assisted"); got != "helped" {
		t.Errorf("expected fallback assisted -> helped, got %q", got)
	}
	if got := naturalFor(m, "subsequently"); got != "then" {
		t.Errorf("expected fallback subsequently -> then, got %q", got)
	}
}

func TestBuildMappingDeterministic(t *testing.T) {
	p := &profile.Profile{ActionVerbs: []string{"helped", "showed", "finished"}}
	a := BuildMapping(p)
	b := BuildMapping(p)
	for i := range a.Entries {
		if a.Entries[i] != b.Entries[i] {
			t.Fatalf("expected identical mappings, diverged at %+v vs %+v", a.Entries[i], b.Entries[i])
		}
	}
}

func TestApplyRewritesClinicalText(t *testing.T) {
	m := BuildMapping(&profile.Profile{ActionVerbs: []string{"helped"}})

	got := m.Apply("The individual assisted with meal preparation. Subsequently the individual's room was cleaned.")
	want := "They helped with meal preparation. Then their room was cleaned."
	if got != want {
		t.Errorf("Apply produced %q, want %q", got, want)
	}
}

func TestApplyIdempotent(t *testing.T) {
	m := BuildMapping(&profile.Profile{
		ActionVerbs: []string{"helped", "showed", "did", "watched", "started", "used", "joined"},
		Descriptors: []string{"good", "great", "well"},
		Transitions: []string{"then"},
	})

	text := "The participant demonstrated excellent progress and completed the task. The participant's mood was appropriate."
	once := m.Apply(text)
	twice := m.Apply(once)
	if once != twice {
		t.Errorf("expected idempotent apply:\n once: %q\ntwice: %q", once, twice)
	}
}

func TestApplyPreservesCase(t *testing.T) {
	m := BuildMapping(&profile.Profile{})
	got := m.Apply("Assisted with breakfast.")
	if got != "Helped with breakfast." {
		t.Errorf("expected capitalized replacement, got %q", got)
	}
}

func TestApplyWholeWordsOnly(t *testing.T) {
	m := BuildMapping(&profile.Profile{})
	// "unassisted" must not be rewritten via "assisted".
	got := m.Apply("The unassisted transfer went fine.")
	if got != "The unassisted transfer went fine." {
		t.Errorf("expected partial words untouched, got %q", got)
	}
}

func TestSubstitutionsExcludeIdentity(t *testing.T) {
	m := BuildMapping(&profile.Profile{})
	for _, e := range m.Substitutions() {
		if e.Natural == e.Clinical {
			t.Errorf("substitutions must differ from clinical term, got %+v", e)
		}
	}
}

func naturalFor(m Mapping, clinical string) string {
	for _, e := range m.Entries {
		if e.Clinical == clinical {
			return e.Natural
		}
	}
	return ""
}
