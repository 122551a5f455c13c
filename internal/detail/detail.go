// Package detail maps the discrete detail-level selector to a target
// length and elaboration instruction block.
package detail

import "fmt"

// Level is the discrete detail selector.
type Level string

const (
	Brief         Level = "brief"
	Moderate      Level = "moderate"
	Detailed      Level = "detailed"
	Comprehensive Level = "comprehensive"
)

// Parse resolves a raw selector value. Unknown or missing values fall back
// to Brief: the common failure mode is an absent field, and the shortest
// output is the safe default.
func Parse(raw string) Level {
	switch Level(raw) {
	case Brief, Moderate, Detailed, Comprehensive:
		return Level(raw)
	default:
		return Brief
	}
}

// Block is the target length band and elaboration directive for a level.
type Block struct {
	Level     Level
	MinWords  int
	MaxWords  int // 0 means open-ended
	Directive string
}

var blocks = map[Level]Block{
	Brief: {
		Level: Brief, MinWords: 30, MaxWords: 60,
		Directive: "Keep it short and factual. One focused paragraph.",
	},
	Moderate: {
		Level: Moderate, MinWords: 60, MaxWords: 120,
		Directive: "Cover what happened and how it went, without padding.",
	},
	Detailed: {
		Level: Detailed, MinWords: 120, MaxWords: 200,
		Directive: "Describe the sequence of events and any notable reactions or outcomes.",
	},
	Comprehensive: {
		Level: Comprehensive, MinWords: 200,
		Directive: "Give a full account: context, sequence of events, reactions, outcomes, and anything worth following up.",
	},
}

// Instructions returns the block for a level, resolving unknown input
// through Parse.
func Instructions(level Level) Block {
	return blocks[Parse(string(level))]
}

// Render produces the length instruction text for the block.
func (b Block) Render() string {
	if b.MaxWords == 0 {
		return fmt.Sprintf("Length: at least %d words. %s", b.MinWords, b.Directive)
	}
	return fmt.Sprintf("Length: %d-%d words. %s", b.MinWords, b.MaxWords, b.Directive)
}
