package database

// GetStats returns aggregate statistics for the status command.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM writing_samples`, &stats.Users},
		{`SELECT COUNT(*) FROM generation_records`, &stats.Generations},
		{`SELECT COUNT(*) FROM generation_records WHERE satisfaction IS NOT NULL`, &stats.RatedGenerations},
		{`SELECT COUNT(*) FROM generation_records WHERE edited_text IS NOT NULL`, &stats.EditedGenerations},
		{`SELECT COUNT(*) FROM style_evolutions`, &stats.Evolutions},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return stats, nil
}
