package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no reading is cached for a text.
var ErrNotFound = errors.New("reading not found")

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// PutReading inserts or replaces the cached reading for text and returns its id.
func PutReading(db DBExecutor, text, reading, source string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("text must be non-empty")
	}

	var id int64
	query := `INSERT INTO readings (text, reading, source)
			  VALUES (?, ?, ?)
			  ON CONFLICT(text)
			  DO UPDATE SET
			    reading = excluded.reading,
			    source = COALESCE(NULLIF(excluded.source, ''), readings.source),
			    updated_at = CURRENT_TIMESTAMP
			  RETURNING id`

	if err := db.QueryRow(query, trimmed, reading, source).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert reading: %w", err)
	}
	return id, nil
}

// GetReading returns the cached reading for text, or ErrNotFound.
func GetReading(db DBExecutor, text string) (Reading, error) {
	var r Reading
	var source sql.NullString
	err := db.QueryRow(
		`SELECT id, text, reading, source, updated_at FROM readings WHERE text = ?`,
		strings.TrimSpace(text),
	).Scan(&r.ID, &r.Text, &r.Reading, &source, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Reading{}, ErrNotFound
	}
	if err != nil {
		return Reading{}, fmt.Errorf("select reading: %w", err)
	}
	if source.Valid {
		r.Source = source.String
	}
	return r, nil
}

// DeleteReading removes the cached reading for text. Missing rows are not an error.
func DeleteReading(db DBExecutor, text string) error {
	_, err := db.Exec(`DELETE FROM readings WHERE text = ?`, strings.TrimSpace(text))
	return err
}

// CountReadings returns the number of cached readings.
func CountReadings(db DBExecutor) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM readings`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
