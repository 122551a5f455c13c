package profile

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptySample is returned when the writing sample has no content.
var ErrEmptySample = errors.New("writing sample is empty")

// Caps keep the profile focused on the user's actual usage rather than
// padding it with the whole candidate lexicon.
const (
	maxVerbs       = 15
	maxDescriptors = 12
	maxTransitions = 10
	maxPhrases     = 8
	maxExpressions = 10

	// Samples under this many words are too sparse for reliable
	// extraction and yield a low-signal profile.
	minSignalWords = 20

	minPhraseChars = 12
)

// Sentence length thresholds (average words per sentence).
const (
	conciseMaxAvg = 12.0
	complexMinAvg = 20.0
)

// Vocabulary complexity thresholds (fraction of words with 8+ letters).
const (
	advancedRatio = 0.20
	moderateRatio = 0.10
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	wordRe          = regexp.MustCompile(`[a-zA-Z']+`)
	clockTimeRe     = regexp.MustCompile(`\b\d{1,2}:\d{2}\b|\b\d{1,2}\s?(?:am|pm|AM|PM)\b`)
)

// expressionPatterns match hedging words, intensifiers, and informal
// contractions. They run against the lowercased sample.
var expressionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:kind of|sort of|a bit|pretty much|more or less)\b`),
	regexp.MustCompile(`\bi (?:think|guess|reckon|suppose|feel like)\b`),
	regexp.MustCompile(`\b(?:really|very|super|so|quite) [a-z]+\b`),
	regexp.MustCompile(`\b[a-z]+n't\b`),
	regexp.MustCompile(`\b(?:it's|that's|he's|she's|they're|we're|i'm|i've|we've)\b`),
}

var personalOpeners = map[string]bool{
	"i": true, "he": true, "she": true, "they": true, "we": true, "you": true,
}

// Common sentence openers that look like names to a capitalization check
// but are not.
var functionOpeners = map[string]bool{
	"the": true, "a": true, "an": true, "it": true, "this": true,
	"that": true, "there": true, "when": true, "if": true, "on": true,
	"in": true, "at": true, "and": true, "but": true, "so": true,
	"after": true, "before": true, "then": true, "today": true,
}

// Extractor derives a Profile from raw sample text. Extraction is a pure
// function of the sample: identical samples always yield identical profiles.
type Extractor struct {
	lex Lexicon
}

// NewExtractor creates an extractor bound to the given lexicon.
func NewExtractor(lex Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract parses a raw writing sample into a Profile. Empty samples are an
// error; short samples yield a low-signal profile rather than erroring so
// callers can proceed with degraded confidence.
func (e *Extractor) Extract(sample string) (*Profile, error) {
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return nil, ErrEmptySample
	}

	lower := strings.ToLower(sample)
	words := wordRe.FindAllString(lower, -1)
	sentences := splitSentences(sample)

	p := &Profile{
		WordCount: len(words),
		LowSignal: len(words) < minSignalWords,
	}

	p.SentenceStyle = classifySentences(len(words), len(sentences))
	p.VocabularyLevel = classifyVocabulary(words)
	p.PunctuationStyle = classifyPunctuation(sample, len(sentences))

	occur := make(map[string]bool, len(words))
	for _, w := range words {
		occur[w] = true
	}

	p.ActionVerbs = retain(e.lex.ActionVerbs, words, occur, maxVerbs)
	p.Descriptors = retain(e.lex.Descriptors, words, occur, maxDescriptors)
	p.Transitions = retain(e.lex.Transitions, words, occur, maxTransitions)
	p.Phrases = extractPhrases(words, maxPhrases)
	p.NaturalExpressions = extractExpressions(lower, maxExpressions)
	p.TimePatterns = detectTimePatterns(lower, e.lex.DayParts)
	p.Tone = e.classifyTone(lower, sentences, occur)

	return p, nil
}

func splitSentences(sample string) []string {
	raw := sentenceSplitRe.Split(sample, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func classifySentences(wordCount, sentenceCount int) SentenceStyle {
	if sentenceCount == 0 {
		return SentenceConcise
	}
	avg := float64(wordCount) / float64(sentenceCount)
	switch {
	case avg < conciseMaxAvg:
		return SentenceConcise
	case avg > complexMinAvg:
		return SentenceComplex
	default:
		return SentenceModerate
	}
}

func classifyVocabulary(words []string) VocabularyLevel {
	if len(words) == 0 {
		return VocabSimple
	}
	long := 0
	for _, w := range words {
		if len(w) >= 8 {
			long++
		}
	}
	ratio := float64(long) / float64(len(words))
	switch {
	case ratio >= advancedRatio:
		return VocabAdvanced
	case ratio >= moderateRatio:
		return VocabModerate
	default:
		return VocabSimple
	}
}

func classifyPunctuation(sample string, sentenceCount int) string {
	if strings.Contains(sample, "!") {
		return "expressive"
	}
	if sentenceCount > 0 {
		commas := strings.Count(sample, ",") + strings.Count(sample, ";")
		if float64(commas)/float64(sentenceCount) > 1.5 {
			return "comma-rich"
		}
	}
	return "plain"
}

// retain keeps lexicon entries that occur in the sample, ordered by first
// occurrence in the sample, deduplicated, capped at max.
func retain(lexicon, words []string, occur map[string]bool, max int) []string {
	inLexicon := make(map[string]bool, len(lexicon))
	for _, entry := range lexicon {
		if occur[entry] {
			inLexicon[entry] = true
		}
	}

	var kept []string
	seen := make(map[string]bool)
	for _, w := range words {
		if !inLexicon[w] || seen[w] {
			continue
		}
		seen[w] = true
		kept = append(kept, w)
		if len(kept) >= max {
			break
		}
	}
	return kept
}

// extractPhrases pulls 2-3 word n-grams above a minimum combined length.
func extractPhrases(words []string, max int) []string {
	var phrases []string
	seen := make(map[string]bool)

	add := func(phrase string) bool {
		if len(phrase) < minPhraseChars || seen[phrase] {
			return false
		}
		seen[phrase] = true
		phrases = append(phrases, phrase)
		return len(phrases) >= max
	}

	for i := 0; i+2 < len(words); i++ {
		if shortWord(words[i]) || shortWord(words[i+1]) || shortWord(words[i+2]) {
			continue
		}
		if add(words[i] + " " + words[i+1] + " " + words[i+2]) {
			return phrases
		}
	}
	for i := 0; i+1 < len(words); i++ {
		if shortWord(words[i]) || shortWord(words[i+1]) {
			continue
		}
		if add(words[i] + " " + words[i+1]) {
			return phrases
		}
	}
	return phrases
}

func shortWord(w string) bool { return len(w) < 4 }

func extractExpressions(lower string, max int) []string {
	var exprs []string
	seen := make(map[string]bool)
	for _, re := range expressionPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			exprs = append(exprs, m)
			if len(exprs) >= max {
				return exprs
			}
		}
	}
	return exprs
}

// detectTimePatterns scans for clock times and day-part words. Two or more
// distinct markers flag the sample as time-sequenced narrative.
func detectTimePatterns(lower string, dayParts []string) TimePatterns {
	var tp TimePatterns
	seen := make(map[string]bool)

	for _, m := range clockTimeRe.FindAllString(lower, -1) {
		if !seen[m] {
			seen[m] = true
			tp.Markers = append(tp.Markers, m)
		}
	}
	for _, part := range dayParts {
		if strings.Contains(lower, part) && !seen[part] {
			seen[part] = true
			tp.Markers = append(tp.Markers, part)
		}
	}

	if len(tp.Markers) >= 2 {
		tp.UsesSequentialTiming = true
		tp.TimeBasedNarrative = true
	}
	return tp
}

// classifyTone combines formal-vs-casual word counts with a penalty for
// personal sentence openers and a bonus for generic-role openers, then
// buckets the signed score.
func (e *Extractor) classifyTone(lower string, sentences []string, occur map[string]bool) Tone {
	score := 0
	for _, w := range e.lex.FormalWords {
		if occur[w] {
			score += 2
		}
	}
	for _, w := range e.lex.CasualWords {
		if occur[w] {
			score -= 2
		}
	}

	for _, s := range sentences {
		sl := strings.ToLower(strings.TrimSpace(s))
		if opensWithGenericRole(sl, e.lex.GenericRoles) {
			score++
			continue
		}
		first := firstWord(s)
		if first == "" {
			continue
		}
		if personalOpeners[strings.ToLower(first)] || looksLikeName(first) {
			score--
		}
	}

	switch {
	case score >= 2:
		return ToneFormal
	case score <= -2:
		return ToneConversational
	default:
		return ToneBalanced
	}
}

func opensWithGenericRole(lowerSentence string, roles []string) bool {
	for _, r := range roles {
		if strings.HasPrefix(lowerSentence, r) {
			return true
		}
	}
	return false
}

func firstWord(sentence string) string {
	m := wordRe.FindString(sentence)
	return m
}

// looksLikeName treats a capitalized opener as a personal name unless it is
// a common function word.
func looksLikeName(word string) bool {
	if word == "" {
		return false
	}
	first := word[0]
	if first < 'A' || first > 'Z' {
		return false
	}
	return !functionOpeners[strings.ToLower(word)]
}
