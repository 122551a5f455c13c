package profile

// SentenceStyle classifies average sentence length.
type SentenceStyle string

const (
	SentenceConcise  SentenceStyle = "concise"
	SentenceModerate SentenceStyle = "moderate"
	SentenceComplex  SentenceStyle = "complex"
)

// VocabularyLevel classifies the share of long words in a sample.
type VocabularyLevel string

const (
	VocabSimple   VocabularyLevel = "simple"
	VocabModerate VocabularyLevel = "moderate"
	VocabAdvanced VocabularyLevel = "advanced"
)

// Tone is the overall register classification of a sample.
type Tone string

const (
	ToneFormal         Tone = "formal"
	ToneBalanced       Tone = "balanced"
	ToneConversational Tone = "conversational"
)

// TimePatterns describes whether and how a sample references time.
type TimePatterns struct {
	UsesSequentialTiming bool     `json:"uses_sequential_timing"`
	TimeBasedNarrative   bool     `json:"time_based_narrative"`
	Markers              []string `json:"markers,omitempty"`
}

// Profile is the extracted vocabulary and style summary of a writing sample.
// It is a pure function of the sample text and is cached by sample hash.
type Profile struct {
	ActionVerbs        []string        `json:"action_verbs"`
	Descriptors        []string        `json:"descriptors"`
	Transitions        []string        `json:"transitions"`
	Phrases            []string        `json:"phrases"`
	NaturalExpressions []string        `json:"natural_expressions"`
	TimePatterns       TimePatterns    `json:"time_patterns"`
	SentenceStyle      SentenceStyle   `json:"sentence_style"`
	VocabularyLevel    VocabularyLevel `json:"vocabulary_level"`
	PunctuationStyle   string          `json:"punctuation_style"`
	Tone               Tone            `json:"tone"`
	WordCount          int             `json:"word_count"`
	// LowSignal marks profiles extracted from samples too short for
	// reliable extraction. Callers proceed with degraded confidence.
	LowSignal bool `json:"low_signal"`
}
