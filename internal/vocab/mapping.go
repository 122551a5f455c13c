// Package vocab builds the substitution table from clinical register terms
// to a user's own preferred natural equivalents.
package vocab

import (
	"regexp"
	"strings"

	"github.com/jmorland/voiceloom/internal/profile"
)

// Entry maps one clinical term to its chosen natural equivalent. When no
// equivalent is available the natural side equals the clinical side.
type Entry struct {
	Clinical string `json:"clinical"`
	Natural  string `json:"natural"`
}

// Mapping is the full substitution table derived from a profile. The table
// is total (every clinical term present) and idempotent: applying it to its
// own output changes nothing.
type Mapping struct {
	Entries     []Entry
	Referential []Entry
}

// clinicalTerm pairs a clinical term with its preference-ordered natural
// candidates. The first candidate present in the profile's verb or
// descriptor lists wins; otherwise the secondary fallback; otherwise the
// clinical term is retained unchanged.
type clinicalTerm struct {
	term       string
	candidates []string
	fallback   string
}

var clinicalTerms = []clinicalTerm{
	{"assisted", []string{"helped"}, "helped"},
	{"demonstrated", []string{"showed"}, "showed"},
	{"completed", []string{"finished", "did"}, "finished"},
	{"participated in", []string{"joined", "did"}, "joined"},
	{"utilized", []string{"used"}, "used"},
	{"engaged in", []string{"did", "tried"}, "tried"},
	{"observed", []string{"watched"}, "watched"},
	{"commenced", []string{"started"}, "started"},
	{"appropriate", []string{"good", "right"}, "good"},
	{"excellent", []string{"great", "good"}, "great"},
	{"adequately", []string{"well"}, "well"},
	{"subsequently", []string{"then", "after"}, "then"},
}

// referentialTable substitutes generic role phrases for personal pronouns.
// It is applied regardless of profile content at maximum authenticity.
// Possessive forms come first so they are rewritten before their prefix.
var referentialTable = []Entry{
	{"the individual's", "their"},
	{"the participant's", "their"},
	{"the individual", "they"},
	{"the participant", "they"},
	{"the client", "they"},
	{"the patient", "they"},
	{"the resident", "they"},
}

// BuildMapping derives the substitution table from a profile. The result is
// deterministic for a given profile.
func BuildMapping(p *profile.Profile) Mapping {
	available := make(map[string]bool, len(p.ActionVerbs)+len(p.Descriptors)+len(p.Transitions))
	for _, w := range p.ActionVerbs {
		available[w] = true
	}
	for _, w := range p.Descriptors {
		available[w] = true
	}
	for _, w := range p.Transitions {
		available[w] = true
	}

	clinicalKeys := make(map[string]bool, len(clinicalTerms))
	for _, ct := range clinicalTerms {
		clinicalKeys[ct.term] = true
	}

	m := Mapping{
		Entries:     make([]Entry, 0, len(clinicalTerms)),
		Referential: referentialTable,
	}
	for _, ct := range clinicalTerms {
		natural := ct.term
		for _, cand := range ct.candidates {
			if available[cand] && !clinicalKeys[cand] {
				natural = cand
				break
			}
		}
		if natural == ct.term && !clinicalKeys[ct.fallback] {
			natural = ct.fallback
		}
		m.Entries = append(m.Entries, Entry{Clinical: ct.term, Natural: natural})
	}
	return m
}

// Substitutions returns only the entries whose natural side differs from
// the clinical term.
func (m Mapping) Substitutions() []Entry {
	var subs []Entry
	for _, e := range m.Entries {
		if e.Natural != e.Clinical {
			subs = append(subs, e)
		}
	}
	return subs
}

// Apply rewrites clinical terms in text to their natural equivalents,
// whole-word, case-insensitive. Because natural values are never clinical
// keys, Apply is idempotent.
func (m Mapping) Apply(text string) string {
	for _, e := range m.Entries {
		if e.Natural == e.Clinical {
			continue
		}
		text = replaceTerm(text, e.Clinical, e.Natural)
	}
	for _, e := range m.Referential {
		text = replaceTerm(text, e.Clinical, e.Natural)
	}
	return text
}

func replaceTerm(text, from, to string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(from) + `\b`)
	return re.ReplaceAllStringFunc(text, func(match string) string {
		if match[0] >= 'A' && match[0] <= 'Z' {
			return strings.ToUpper(to[:1]) + to[1:]
		}
		return to
	})
}
