// Package confidence maintains the per-user running estimate of how well
// generated output matches the user's voice.
package confidence

import (
	"github.com/jmorland/voiceloom/internal/database"
)

// Category buckets a confidence score.
type Category string

const (
	CategoryLow       Category = "low"
	CategoryMedium    Category = "medium"
	CategoryHigh      Category = "high"
	CategoryExcellent Category = "excellent"
)

// Defaults used when the history carries no ratings or style-match scores,
// so an unrated history degrades to midpoint statistics instead of erroring.
const (
	defaultAvgSatisfaction = 0.6
	defaultAvgStyleMatch   = 0.50
)

// Summary is the aggregate view of a user's generation history that the
// score derives from.
type Summary struct {
	Count           int
	RatedCount      int
	ScoredCount     int
	AvgSatisfaction float64 // normalized to [0, 1]
	AvgStyleMatch   float64
}

// Summarize computes history aggregates. Satisfaction (1-5) is normalized
// by dividing by 5; records without a rating or style-match score do not
// pull the averages down.
func Summarize(records []database.GenerationRecord) Summary {
	s := Summary{Count: len(records)}

	var satTotal float64
	var matchTotal float64
	for _, rec := range records {
		if rec.Satisfaction != nil {
			satTotal += float64(*rec.Satisfaction)
			s.RatedCount++
		}
		if rec.StyleMatch > 0 {
			matchTotal += rec.StyleMatch
			s.ScoredCount++
		}
	}

	if s.RatedCount > 0 {
		s.AvgSatisfaction = satTotal / float64(s.RatedCount) / 5
	} else {
		s.AvgSatisfaction = defaultAvgSatisfaction
	}
	if s.ScoredCount > 0 {
		s.AvgStyleMatch = matchTotal / float64(s.ScoredCount)
	} else {
		s.AvgStyleMatch = defaultAvgStyleMatch
	}
	return s
}

// Score computes the confidence score for a history summary:
// 0.4*styleMatch + 0.4*satisfaction plus a stepped experience bonus that
// saturates with record count, clamped to [0, 1].
func Score(s Summary) float64 {
	score := 0.4*s.AvgStyleMatch + 0.4*s.AvgSatisfaction + experienceBonus(s.Count)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// experienceBonus rewards accumulated history with fixed plateaus.
func experienceBonus(count int) float64 {
	switch {
	case count >= 50:
		return 0.20
	case count >= 20:
		return 0.15
	case count >= 10:
		return 0.10
	default:
		return 0.01 * float64(count)
	}
}

// Categorize buckets a score. Boundaries are exact: 0.85 is excellent,
// 0.849999 is high.
func Categorize(score float64) Category {
	switch {
	case score >= 0.85:
		return CategoryExcellent
	case score >= 0.70:
		return CategoryHigh
	case score >= 0.40:
		return CategoryMedium
	default:
		return CategoryLow
	}
}
