package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS writing_samples (
    user_id TEXT PRIMARY KEY,
    sample_text TEXT NOT NULL,
    source TEXT,
    created_at TEXT DEFAULT (datetime('now')),
    updated_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS vocabulary_profiles (
    user_id TEXT PRIMARY KEY REFERENCES writing_samples(user_id),
    sample_hash TEXT NOT NULL,
    profile_json TEXT NOT NULL,
    extracted_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS generation_records (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    section_id TEXT,
    prompt TEXT NOT NULL,
    generated_text TEXT NOT NULL,
    edited_text TEXT,
    edit_type TEXT,
    confidence REAL DEFAULT 0,
    satisfaction INTEGER,
    feedback TEXT,
    tokens_used INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    style_match REAL DEFAULT 0,
    created_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS confidence_states (
    user_id TEXT PRIMARY KEY,
    score REAL NOT NULL DEFAULT 0,
    category TEXT NOT NULL DEFAULT 'low',
    generation_count INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS style_evolutions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    previous_sample TEXT,
    new_sample TEXT NOT NULL,
    confidence_before REAL DEFAULT 0,
    confidence_after REAL DEFAULT 0,
    trigger_reason TEXT NOT NULL,
    records_considered INTEGER DEFAULT 0,
    improvement_metrics TEXT,
    created_at TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_generation_records_user ON generation_records(user_id);
CREATE INDEX IF NOT EXISTS idx_generation_records_created ON generation_records(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_style_evolutions_user ON style_evolutions(user_id, created_at);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
