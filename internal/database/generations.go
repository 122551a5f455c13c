package database

import (
	"database/sql"
	"fmt"
)

// InsertGenerationRecord stores a new analytics record.
func (db *DB) InsertGenerationRecord(rec *GenerationRecord) error {
	_, err := db.conn.Exec(
		`INSERT INTO generation_records
		 (id, user_id, section_id, prompt, generated_text, edited_text, edit_type,
		  confidence, satisfaction, feedback, tokens_used, duration_ms, style_match)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.SectionID, rec.Prompt, rec.GeneratedText,
		rec.EditedText, rec.EditType, rec.Confidence, rec.Satisfaction,
		rec.Feedback, rec.TokensUsed, rec.DurationMs, rec.StyleMatch,
	)
	return err
}

// GetGenerationRecord returns a single record by ID, or nil if not found.
func (db *DB) GetGenerationRecord(id string) (*GenerationRecord, error) {
	row := db.conn.QueryRow(selectGeneration+` WHERE id = ?`, id)
	rec, err := scanGeneration(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetGenerationRecords returns all records for a user, oldest first.
func (db *DB) GetGenerationRecords(userID string) ([]GenerationRecord, error) {
	return db.queryGenerations(selectGeneration+` WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID)
}

// GetRecentGenerations returns the most recent records across all users.
func (db *DB) GetRecentGenerations(limit int) ([]GenerationRecord, error) {
	return db.queryGenerations(selectGeneration+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// AttachEdit records the user-edited text and its categorized edit type.
func (db *DB) AttachEdit(id, editedText, editType string) error {
	res, err := db.conn.Exec(
		`UPDATE generation_records SET edited_text = ?, edit_type = ? WHERE id = ?`,
		editedText, editType, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// AttachSatisfaction records a 1-5 rating and optional free-text feedback.
func (db *DB) AttachSatisfaction(id string, satisfaction int, feedback *string) error {
	res, err := db.conn.Exec(
		`UPDATE generation_records SET satisfaction = ?, feedback = ? WHERE id = ?`,
		satisfaction, feedback, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("generation record %s not found", id)
	}
	return nil
}

const selectGeneration = `SELECT id, user_id, section_id, prompt, generated_text,
	edited_text, edit_type, confidence, satisfaction, feedback, tokens_used,
	duration_ms, style_match, created_at FROM generation_records`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*GenerationRecord, error) {
	var rec GenerationRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.SectionID, &rec.Prompt, &rec.GeneratedText,
		&rec.EditedText, &rec.EditType, &rec.Confidence, &rec.Satisfaction,
		&rec.Feedback, &rec.TokensUsed, &rec.DurationMs, &rec.StyleMatch,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (db *DB) queryGenerations(query string, args ...any) ([]GenerationRecord, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		rec, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
