package detail

import (
	"strings"
	"testing"
)

func TestParseKnownLevels(t *testing.T) {
	for _, level := range []Level{Brief, Moderate, Detailed, Comprehensive} {
		if got := Parse(string(level)); got != level {
			t.Errorf("Parse(%q) = %q", level, got)
		}
	}
}

func TestParseUnknownFallsBackToBrief(t *testing.T) {
	for _, raw := range []string{"", "verbose", "BRIEF", "medium"} {
		if got := Parse(raw); got != Brief {
			t.Errorf("Parse(%q) = %q, want brief", raw, got)
		}
	}
}

func TestInstructionsBands(t *testing.T) {
	tests := []struct {
		level    Level
		minWords int
		maxWords int
	}{
		{Brief, 30, 60},
		{Moderate, 60, 120},
		{Detailed, 120, 200},
		{Comprehensive, 200, 0},
	}
	for _, tt := range tests {
		b := Instructions(tt.level)
		if b.MinWords != tt.minWords || b.MaxWords != tt.maxWords {
			t.Errorf("%s: got %d-%d, want %d-%d", tt.level, b.MinWords, b.MaxWords, tt.minWords, tt.maxWords)
		}
	}
}

func TestRenderBoundedBand(t *testing.T) {
	got := Instructions(Moderate).Render()
	if !strings.Contains(got, "60-120 words") {
		t.Errorf("expected bounded band in %q", got)
	}
}

func TestRenderOpenEndedBand(t *testing.T) {
	got := Instructions(Comprehensive).Render()
	if !strings.Contains(got, "at least 200 words") {
		t.Errorf("expected open-ended band in %q", got)
	}
}
