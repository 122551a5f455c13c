package confidence

import "strings"

// Edit type categories attached to a generation record when the user
// submits an edited version of the generated text.
const (
	EditNone     = "none"
	EditMinor    = "minor"
	EditModerate = "moderate"
	EditRewrite  = "rewrite"
)

// ClassifyEdit buckets how far the edited text diverges from the original,
// by word-level overlap.
func ClassifyEdit(original, edited string) string {
	original = strings.TrimSpace(original)
	edited = strings.TrimSpace(edited)
	if edited == "" || edited == original {
		return EditNone
	}

	overlap := wordOverlap(original, edited)
	switch {
	case overlap >= 0.9:
		return EditMinor
	case overlap >= 0.5:
		return EditModerate
	default:
		return EditRewrite
	}
}

// wordOverlap is the Jaccard similarity of the two texts' word sets.
func wordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[strings.Trim(w, ".,!?;:\"'()")] = true
	}
	return set
}
