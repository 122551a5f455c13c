package profile

// Lexicon holds the candidate word lists the extractor scans a sample
// against. It is bound at extractor construction so tests can substitute
// alternative lists.
type Lexicon struct {
	ActionVerbs []string
	Descriptors []string
	Transitions []string
	FormalWords []string
	CasualWords []string
	DayParts    []string
	// GenericRoles are clinical ways of referring to a person. Sentences
	// opening with one of these pull the tone score toward formal.
	GenericRoles []string
}

// DefaultLexicon returns the built-in candidate lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		ActionVerbs: []string{
			"helped", "did", "made", "went", "tried", "worked", "practiced",
			"finished", "started", "used", "cut", "cooked", "cleaned",
			"played", "talked", "walked", "showed", "learned", "enjoyed",
			"needed", "wanted", "joined", "watched", "picked", "handled",
			"managed", "sorted", "washed", "wrote", "asked",
		},
		Descriptors: []string{
			"good", "great", "well", "happy", "calm", "careful", "quick",
			"slow", "easy", "hard", "tired", "proud", "confident", "steady",
			"neat", "messy", "busy", "quiet", "cheerful", "focused",
		},
		Transitions: []string{
			"then", "after", "before", "next", "later", "first", "finally",
			"afterwards", "meanwhile", "eventually", "once", "while",
			"during", "also",
		},
		FormalWords: []string{
			"assisted", "demonstrated", "completed", "utilized", "engaged",
			"participated", "exhibited", "observed", "facilitated",
			"implemented", "appropriate", "independently", "subsequently",
			"furthermore", "additionally", "therefore", "regarding",
		},
		CasualWords: []string{
			"really", "pretty", "kinda", "sorta", "stuff", "things", "lots",
			"super", "totally", "basically", "honestly", "awesome", "okay",
			"ok", "bit", "loads", "heaps",
		},
		DayParts: []string{
			"morning", "afternoon", "evening", "night", "lunchtime",
			"breakfast", "dinner", "midday",
		},
		GenericRoles: []string{
			"the individual", "the participant", "the client", "the patient",
			"the resident", "the service user",
		},
	}
}
