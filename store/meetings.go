package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Meeting is one row of the meetings table. Nullable columns use
// sql.NullString so "absent" and "empty" stay distinct.
type Meeting struct {
	ID           int64
	Title        string
	MeetingDate  string
	DocumentType string
	FilePath     sql.NullString
	DocumentURL  sql.NullString
	PastedText   sql.NullString
	MinutesMD    sql.NullString
	AISummary    sql.NullString
}

const meetingColumns = `id, title, meeting_date, document_type,
	file_path, document_url, pasted_text, minutes_md, ai_summary`

func scanMeeting(row interface{ Scan(...any) error }) (Meeting, error) {
	var m Meeting
	err := row.Scan(
		&m.ID, &m.Title, &m.MeetingDate, &m.DocumentType,
		&m.FilePath, &m.DocumentURL, &m.PastedText, &m.MinutesMD, &m.AISummary,
	)
	return m, err
}

// SelectCandidates returns meetings eligible for summary generation, newest
// first: those with an actual document source and, unless force is set, no
// summary yet. limit <= 0 means no limit.
func (s *Store) SelectCandidates(ctx context.Context, limit int, force bool) ([]Meeting, error) {
	q := `SELECT ` + meetingColumns + `
		FROM meetings
		WHERE document_type IN ('file', 'url', 'paste')`
	if !force {
		q += ` AND ai_summary IS NULL`
	}
	q += ` ORDER BY id DESC`

	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	defer rows.Close()

	var meetings []Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return meetings, nil
}

// GetMeeting fetches one meeting by id.
func (s *Store) GetMeeting(ctx context.Context, id int64) (Meeting, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	m, err := scanMeeting(row)
	if err != nil {
		return Meeting{}, fmt.Errorf("get meeting %d: %w", id, err)
	}
	return m, nil
}

// UpdateSummary stores the extracted minutes and the generated summary for a
// meeting in one statement.
func (s *Store) UpdateSummary(ctx context.Context, id int64, minutesMD, summary string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE meetings SET minutes_md = ?, ai_summary = ? WHERE id = ?`,
		minutesMD, summary, id)
	if err != nil {
		return fmt.Errorf("update meeting %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meeting %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update meeting %d: no such meeting", id)
	}
	return nil
}

// Insert adds a meeting record and returns its id.
func (s *Store) Insert(ctx context.Context, m Meeting) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO meetings (title, meeting_date, document_type,
			file_path, document_url, pasted_text, minutes_md, ai_summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.MeetingDate, m.DocumentType,
		m.FilePath, m.DocumentURL, m.PastedText, m.MinutesMD, m.AISummary)
	if err != nil {
		return 0, fmt.Errorf("insert meeting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert meeting: %w", err)
	}
	return id, nil
}
