package database

import "database/sql"

// UpsertWritingSample stores or replaces the writing sample for a user.
func (db *DB) UpsertWritingSample(userID, sampleText string, source *string) error {
	_, err := db.conn.Exec(
		`INSERT INTO writing_samples (user_id, sample_text, source)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   sample_text = excluded.sample_text,
		   source = excluded.source,
		   updated_at = datetime('now')`,
		userID, sampleText, source,
	)
	return err
}

// GetWritingSample returns the sample for a user, or nil if none is set.
func (db *DB) GetWritingSample(userID string) (*WritingSample, error) {
	row := db.conn.QueryRow(
		`SELECT user_id, sample_text, source, created_at, updated_at
		 FROM writing_samples WHERE user_id = ?`, userID,
	)
	var s WritingSample
	if err := row.Scan(&s.UserID, &s.SampleText, &s.Source, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// UpsertProfileCache stores the extracted profile for a user.
func (db *DB) UpsertProfileCache(userID, sampleHash, profileJSON string) error {
	_, err := db.conn.Exec(
		`INSERT INTO vocabulary_profiles (user_id, sample_hash, profile_json)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   sample_hash = excluded.sample_hash,
		   profile_json = excluded.profile_json,
		   extracted_at = datetime('now')`,
		userID, sampleHash, profileJSON,
	)
	return err
}

// GetProfileCache returns the cached profile for a user, or nil if absent.
func (db *DB) GetProfileCache(userID string) (*ProfileCache, error) {
	row := db.conn.QueryRow(
		`SELECT user_id, sample_hash, profile_json, extracted_at
		 FROM vocabulary_profiles WHERE user_id = ?`, userID,
	)
	var c ProfileCache
	if err := row.Scan(&c.UserID, &c.SampleHash, &c.ProfileJSON, &c.ExtractedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// DeleteProfileCache drops the cached profile so it is rebuilt on next use.
func (db *DB) DeleteProfileCache(userID string) error {
	_, err := db.conn.Exec(`DELETE FROM vocabulary_profiles WHERE user_id = ?`, userID)
	return err
}
