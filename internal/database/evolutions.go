package database

// InsertStyleEvolution appends an evolution log entry.
func (db *DB) InsertStyleEvolution(ev *StyleEvolution) error {
	_, err := db.conn.Exec(
		`INSERT INTO style_evolutions
		 (id, user_id, previous_sample, new_sample, confidence_before,
		  confidence_after, trigger_reason, records_considered, improvement_metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.PreviousSample, ev.NewSample, ev.ConfidenceBefore,
		ev.ConfidenceAfter, ev.TriggerReason, ev.RecordsConsidered, ev.ImprovementMetrics,
	)
	return err
}

// GetStyleEvolutions returns a user's evolution log, most recent first.
// The most recent entry is the current lineage.
func (db *DB) GetStyleEvolutions(userID string) ([]StyleEvolution, error) {
	rows, err := db.conn.Query(
		`SELECT id, user_id, previous_sample, new_sample, confidence_before,
		        confidence_after, trigger_reason, records_considered,
		        improvement_metrics, created_at
		 FROM style_evolutions WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evolutions []StyleEvolution
	for rows.Next() {
		var ev StyleEvolution
		if err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.PreviousSample, &ev.NewSample,
			&ev.ConfidenceBefore, &ev.ConfidenceAfter, &ev.TriggerReason,
			&ev.RecordsConsidered, &ev.ImprovementMetrics, &ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		evolutions = append(evolutions, ev)
	}
	return evolutions, rows.Err()
}
