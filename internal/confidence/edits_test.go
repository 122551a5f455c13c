package confidence

import "testing"

func TestClassifyEdit(t *testing.T) {
	original := "the quick brown fox jumped over a lazy dog while birds sang softly in tall green trees near our quiet house"

	tests := []struct {
		name   string
		edited string
		want   string
	}{
		{"identical", original, EditNone},
		{"whitespace only", "  " + original + "  ", EditNone},
		{"empty", "", EditNone},
		{"one word changed", "the quick brown fox jumped over a lazy dog while birds sang softly in tall green trees near our small house", EditMinor},
		{"partly rewritten", "the quick brown fox jumped over a lazy dog while birds sang softly in tall trees yesterday afternoon", EditModerate},
		{"full rewrite", "completely different text covering unrelated events with no shared vocabulary whatsoever", EditRewrite},
	}
	for _, tt := range tests {
		if got := ClassifyEdit(original, tt.edited); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestClassifyEditIgnoresCaseAndPunctuation(t *testing.T) {
	original := "We finished the cleaning by lunchtime, then went to the shops."
	edited := "we finished the cleaning by lunchtime then went to the shops"
	if got := ClassifyEdit(original, edited); got != EditMinor {
		t.Errorf("expected minor for case/punctuation-only change, got %s", got)
	}
}
