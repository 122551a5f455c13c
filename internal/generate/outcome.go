package generate

import (
	"fmt"

	"github.com/jmorland/voiceloom/internal/confidence"
	"github.com/jmorland/voiceloom/internal/database"
)

// Rate attaches a 1-5 satisfaction rating (and optional feedback) to a
// generation record and recomputes the user's confidence.
func (s *Service) Rate(recordID string, satisfaction int, feedback string) (*database.ConfidenceState, error) {
	if satisfaction < 1 || satisfaction > 5 {
		return nil, fmt.Errorf("satisfaction %d outside [1, 5]", satisfaction)
	}

	rec, err := s.db.GetGenerationRecord(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("generation record %s not found", recordID)
	}

	var fb *string
	if feedback != "" {
		fb = &feedback
	}
	if err := s.db.AttachSatisfaction(recordID, satisfaction, fb); err != nil {
		return nil, err
	}
	return s.engine.Tracker().Refresh(rec.UserID)
}

// SubmitEdit attaches the user's edited version of the generated text,
// classifies the edit, and recomputes confidence.
func (s *Service) SubmitEdit(recordID, editedText string) (*database.ConfidenceState, error) {
	rec, err := s.db.GetGenerationRecord(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("generation record %s not found", recordID)
	}

	editType := confidence.ClassifyEdit(rec.GeneratedText, editedText)
	if err := s.db.AttachEdit(recordID, editedText, editType); err != nil {
		return nil, err
	}
	return s.engine.Tracker().Refresh(rec.UserID)
}
