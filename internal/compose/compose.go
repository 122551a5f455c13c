// Package compose assembles the final generation instruction payload handed
// to the external text generator.
package compose

import (
	"fmt"
	"strings"

	"github.com/jmorland/voiceloom/internal/detail"
	"github.com/jmorland/voiceloom/internal/profile"
	"github.com/jmorland/voiceloom/internal/tone"
)

// Request carries everything the composer needs. Composition is pure: the
// same request always yields the same instruction text, and no I/O happens
// here.
type Request struct {
	Prompt      string
	TaskContext string
	Sample      string
	Profile     *profile.Profile
	Tone        *tone.Block
	Detail      detail.Block
}

const directives = `Write the documentation now. Ground every statement in the prompt; do not invent events. Match the writer's sentence rhythm and vocabulary as described above. Output only the finished text, no preamble.`

// Instruction concatenates the style summary, tone block, detail block,
// grounding sample, task context, and prompt, followed by fixed directives.
func Instruction(req Request) string {
	var sb strings.Builder

	sb.WriteString("You are expanding a short note into finished documentation in a specific person's writing voice.\n\n")

	sb.WriteString(styleSummary(req.Profile))
	sb.WriteString("\n")

	sb.WriteString(req.Tone.Render())
	sb.WriteString("\n\n")

	sb.WriteString(req.Detail.Render())
	sb.WriteString("\n\n")

	if req.Sample != "" {
		fmt.Fprintf(&sb, "Reference writing sample (match this voice):\n%s\n\n", strings.TrimSpace(req.Sample))
	}
	if req.TaskContext != "" {
		fmt.Fprintf(&sb, "Context: %s\n\n", strings.TrimSpace(req.TaskContext))
	}

	fmt.Fprintf(&sb, "Note to expand: %s\n\n", strings.TrimSpace(req.Prompt))
	sb.WriteString(directives)
	return sb.String()
}

// styleSummary states the profile's structural classifications verbatim.
func styleSummary(p *profile.Profile) string {
	var sb strings.Builder
	sb.WriteString("Writer's style profile:\n")
	fmt.Fprintf(&sb, "- Sentence style: %s\n", p.SentenceStyle)
	fmt.Fprintf(&sb, "- Vocabulary level: %s\n", p.VocabularyLevel)
	fmt.Fprintf(&sb, "- Punctuation style: %s\n", p.PunctuationStyle)
	fmt.Fprintf(&sb, "- Overall tone: %s\n", p.Tone)
	if p.TimePatterns.TimeBasedNarrative {
		sb.WriteString("- Narrates events in time order with explicit time markers\n")
	}
	if p.LowSignal {
		sb.WriteString("- Profile drawn from a short sample; follow the reference sample closely\n")
	}
	return sb.String()
}
