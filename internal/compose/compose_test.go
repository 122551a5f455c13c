package compose

import (
	"strings"
	"testing"

	"github.com/jmorland/voiceloom/internal/detail"
	"github.com/jmorland/voiceloom/internal/profile"
	"github.com/jmorland/voiceloom/internal/tone"
	"github.com/jmorland/voiceloom/internal/vocab"
)

func buildRequest(t *testing.T, toneLevel int) Request {
	t.Helper()
	sample := "I helped John with his morning routine. He did really well and we finished the cleaning by lunchtime. Then we went to the shops and he picked his own snacks."

	p, err := profile.NewExtractor(profile.DefaultLexicon()).Extract(sample)
	if err != nil {
		t.Fatalf("extracting profile: %v", err)
	}
	m := vocab.BuildMapping(p)
	tb, err := tone.Compose(toneLevel, p, m)
	if err != nil {
		t.Fatalf("composing tone block: %v", err)
	}
	return Request{
		Prompt:      "helped with breakfast, went shopping after",
		TaskContext: "daily support notes",
		Sample:      sample,
		Profile:     p,
		Tone:        tb,
		Detail:      detail.Instructions(detail.Moderate),
	}
}

func TestInstructionPure(t *testing.T) {
	req := buildRequest(t, 30)
	if Instruction(req) != Instruction(req) {
		t.Error("expected identical output for identical requests")
	}
}

func TestInstructionAuthenticVoice(t *testing.T) {
	req := buildRequest(t, 0)
	got := Instruction(req)

	for _, want := range []string{
		"Writer's style profile",
		"- Sentence style: concise",
		"- Overall tone: conversational",
		"never use a generic role phrase",
		"Length: 60-120 words",
		"Note to expand: helped with breakfast, went shopping after",
		"Context: daily support notes",
		"Reference writing sample",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected instruction to contain %q", want)
		}
	}

	// Every differing mapping entry appears at full authenticity.
	for _, e := range vocab.BuildMapping(req.Profile).Substitutions() {
		line := `"` + e.Natural + `" rather than "` + e.Clinical + `"`
		if !strings.Contains(got, line) {
			t.Errorf("expected instruction to contain %s", line)
		}
	}

	if strings.Contains(got, "the individual") {
		t.Error("expected no generic role phrase in the instruction")
	}
	if strings.Contains(got, "clinical vocabulary") {
		t.Error("expected no clinical guidance at tone 0")
	}
}

func TestInstructionProfessionalVoice(t *testing.T) {
	got := Instruction(buildRequest(t, 100))

	if !strings.Contains(got, "clinical vocabulary") {
		t.Error("expected clinical guidance at tone 100")
	}
	if !strings.Contains(got, "exclusively") {
		t.Error("expected exclusivity directive at tone 100")
	}
	if strings.Contains(got, "rather than") {
		t.Error("expected no substitution guidance at tone 100")
	}
}

func TestInstructionTimeNarrative(t *testing.T) {
	got := Instruction(buildRequest(t, 30))
	if !strings.Contains(got, "time order") {
		t.Error("expected time-narrative line for a sample with morning and lunchtime markers")
	}
}

func TestInstructionOmitsEmptyContext(t *testing.T) {
	req := buildRequest(t, 30)
	req.TaskContext = ""
	got := Instruction(req)
	if strings.Contains(got, "Context:") {
		t.Error("expected no context line when task context is empty")
	}
}

func TestInstructionLowSignalSample(t *testing.T) {
	p, err := profile.NewExtractor(profile.DefaultLexicon()).Extract("Had a quiet day today.")
	if err != nil {
		t.Fatalf("extracting profile: %v", err)
	}
	m := vocab.BuildMapping(p)
	tb, err := tone.Compose(30, p, m)
	if err != nil {
		t.Fatalf("composing tone block: %v", err)
	}

	got := Instruction(Request{
		Prompt:  "quiet afternoon",
		Sample:  "Had a quiet day today.",
		Profile: p,
		Tone:    tb,
		Detail:  detail.Instructions(detail.Brief),
	})
	if !strings.Contains(got, "short sample") {
		t.Error("expected low-signal note in instruction")
	}
}
