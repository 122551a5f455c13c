package database

// WritingSample is the user's canonical style reference text. Replacing it
// triggers re-extraction and a style evolution event.
type WritingSample struct {
	UserID     string
	SampleText string
	Source     *string
	CreatedAt  *string
	UpdatedAt  *string
}

// ProfileCache is the persisted vocabulary profile for a user, keyed by the
// hash of the sample it was extracted from.
type ProfileCache struct {
	UserID      string
	SampleHash  string
	ProfileJSON string
	ExtractedAt *string
}

// GenerationRecord is one row per generated section. Immutable once written
// except for the edit/satisfaction fields, which can be attached later.
type GenerationRecord struct {
	ID            string
	UserID        string
	SectionID     *string
	Prompt        string
	GeneratedText string
	EditedText    *string
	EditType      *string
	Confidence    float64
	Satisfaction  *int // 1-5
	Feedback      *string
	TokensUsed    int
	DurationMs    int64
	StyleMatch    float64 // [0, 1]
	CreatedAt     *string
}

// ConfidenceState is the per-user running confidence. It is a derived
// cache, rebuilt from the full record history on every write.
type ConfidenceState struct {
	UserID          string
	Score           float64
	Category        string
	GenerationCount int
	UpdatedAt       *string
}

// StyleEvolution is an append-only log entry written whenever the writing
// sample changes. Ordering by creation time is significant.
type StyleEvolution struct {
	ID                 string
	UserID             string
	PreviousSample     *string
	NewSample          string
	ConfidenceBefore   float64
	ConfidenceAfter    float64
	TriggerReason      string
	RecordsConsidered  int
	ImprovementMetrics *string // opaque JSON payload
	CreatedAt          *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	Users             int
	Generations       int
	RatedGenerations  int
	EditedGenerations int
	Evolutions        int
}
