// Package tone converts the 0-100 tone dial into continuous blend weights
// and renders them, with the profile and mapping, into a voice-guidance
// instruction block.
//
// Blending is a continuous function of the dial. The block is represented
// as data (weights plus selected guidance fragments) whose included items
// scale with the weights, so there is no template switch at any threshold.
package tone

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmorland/voiceloom/internal/profile"
	"github.com/jmorland/voiceloom/internal/vocab"
)

// Weights are the continuous authenticity/professional blend for a tone
// level. They always sum to 1.
type Weights struct {
	Authenticity float64
	Professional float64
}

// ErrToneOutOfRange reports a tone level outside [0, 100].
type ErrToneOutOfRange struct {
	Level int
}

func (e *ErrToneOutOfRange) Error() string {
	return fmt.Sprintf("tone level %d outside [0, 100]", e.Level)
}

// Blend computes the continuous blend weights for a tone level.
func Blend(level int) (Weights, error) {
	if level < 0 || level > 100 {
		return Weights{}, &ErrToneOutOfRange{Level: level}
	}
	return Weights{
		Authenticity: math.Max(0, float64(100-level)/100),
		Professional: math.Max(0, float64(level)/100),
	}, nil
}

// clinicalRegister is the fixed clinical vocabulary injected as the
// professional weight rises. At level 100 the whole list is required.
var clinicalRegister = []string{
	"assisted", "demonstrated", "completed", "participated in", "utilized",
	"engaged in", "observed", "facilitated", "independently", "appropriate",
	"subsequently", "exhibited",
}

// Block is the rendered-to-data voice guidance for one generation request.
type Block struct {
	Level   int
	Weights Weights

	// Substitutions, Expressions, and ClinicalTerms are the selected
	// guidance fragments. Their sizes scale monotonically with the
	// weights: level 0 includes every substitution and expression and no
	// clinical terms, level 100 the reverse.
	Substitutions []vocab.Entry
	Expressions   []string
	ClinicalTerms []string

	// Referential substitutions apply only at maximum authenticity.
	Referential            []vocab.Entry
	PreferPersonalPronouns bool
}

// Compose selects the guidance fragments for a tone level from the profile
// and mapping.
func Compose(level int, p *profile.Profile, m vocab.Mapping) (*Block, error) {
	w, err := Blend(level)
	if err != nil {
		return nil, err
	}

	subs := m.Substitutions()
	b := &Block{
		Level:                  level,
		Weights:                w,
		Substitutions:          take(subs, scaled(w.Authenticity, len(subs))),
		Expressions:            takeStrings(p.NaturalExpressions, scaled(w.Authenticity, len(p.NaturalExpressions))),
		ClinicalTerms:          takeStrings(clinicalRegister, scaled(w.Professional, len(clinicalRegister))),
		PreferPersonalPronouns: w.Authenticity >= w.Professional,
	}
	if level == 0 {
		b.Referential = m.Referential
	}
	return b, nil
}

// scaled rounds weight*n to the nearest count. For n <= 100 the count
// changes by at most one between consecutive dial values.
func scaled(weight float64, n int) int {
	return int(math.Round(weight * float64(n)))
}

func take(entries []vocab.Entry, n int) []vocab.Entry {
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

func takeStrings(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// Render produces the instruction text for the block. Sections are ordered
// by their blend weight so the dominant register is foregrounded.
func (b *Block) Render() string {
	var sb strings.Builder
	sb.WriteString("Voice guidance:\n")

	authentic := b.renderAuthentic()
	professional := b.renderProfessional()

	if b.Weights.Authenticity >= b.Weights.Professional {
		sb.WriteString(authentic)
		sb.WriteString(professional)
	} else {
		sb.WriteString(professional)
		sb.WriteString(authentic)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Block) renderAuthentic() string {
	if len(b.Substitutions) == 0 && len(b.Expressions) == 0 && len(b.Referential) == 0 && !b.PreferPersonalPronouns {
		return ""
	}
	var sb strings.Builder
	for _, e := range b.Substitutions {
		fmt.Fprintf(&sb, "- Write %q rather than %q.\n", e.Natural, e.Clinical)
	}
	if len(b.Expressions) > 0 {
		fmt.Fprintf(&sb, "- Weave in the writer's own expressions where they fit: %s.\n",
			strings.Join(b.Expressions, ", "))
	}
	// The referential directive names only the natural side: the rendered
	// instruction must never itself contain a generic role phrase.
	switch {
	case len(b.Referential) > 0:
		sb.WriteString("- Always refer to people by name or as \"they\"/\"their\"; never use a generic role phrase.\n")
	case b.PreferPersonalPronouns:
		sb.WriteString("- Refer to people by name or personal pronoun, never by generic role.\n")
	}
	return sb.String()
}

func (b *Block) renderProfessional() string {
	if len(b.ClinicalTerms) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Use professional clinical vocabulary: %s.\n",
		strings.Join(b.ClinicalTerms, ", "))
	if b.Weights.Professional >= 1.0 {
		sb.WriteString("- Use clinical register exclusively; do not use idiomatic or informal phrasing.\n")
	}
	return sb.String()
}
