package database

import "database/sql"

// UpsertConfidenceState stores the recomputed confidence for a user.
func (db *DB) UpsertConfidenceState(state *ConfidenceState) error {
	_, err := db.conn.Exec(
		`INSERT INTO confidence_states (user_id, score, category, generation_count)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   score = excluded.score,
		   category = excluded.category,
		   generation_count = excluded.generation_count,
		   updated_at = datetime('now')`,
		state.UserID, state.Score, state.Category, state.GenerationCount,
	)
	return err
}

// GetConfidenceState returns the confidence state for a user, or nil if no
// state has been written yet.
func (db *DB) GetConfidenceState(userID string) (*ConfidenceState, error) {
	row := db.conn.QueryRow(
		`SELECT user_id, score, category, generation_count, updated_at
		 FROM confidence_states WHERE user_id = ?`, userID,
	)
	var s ConfidenceState
	if err := row.Scan(&s.UserID, &s.Score, &s.Category, &s.GenerationCount, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
