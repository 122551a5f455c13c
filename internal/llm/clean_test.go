package llm

import "testing"

func TestCleanResponsePlain(t *testing.T) {
	got := CleanResponse("  Alex had a steady morning.  \n")
	if got != "Alex had a steady morning." {
		t.Errorf("expected trimmed text, got %q", got)
	}
}

func TestCleanResponseCodeFence(t *testing.T) {
	got := CleanResponse("```\nAlex had a steady morning.\n```")
	if got != "Alex had a steady morning." {
		t.Errorf("expected fence stripped, got %q", got)
	}
}

func TestCleanResponseLanguageFence(t *testing.T) {
	got := CleanResponse("```markdown\nFirst line.\n\nSecond line.\n```")
	if got != "First line.\n\nSecond line." {
		t.Errorf("expected language fence stripped, got %q", got)
	}
}

func TestCleanResponseUnclosedFence(t *testing.T) {
	got := CleanResponse("```\nAlex had a steady morning.")
	if got != "Alex had a steady morning." {
		t.Errorf("expected unclosed fence handled, got %q", got)
	}
}

func TestCleanResponseEmpty(t *testing.T) {
	if got := CleanResponse("   "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
