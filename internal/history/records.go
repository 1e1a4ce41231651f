package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const recordColumns = "id, kind, title, input_path, output_path, video_codec, audio_codec, arguments_json, status, error_message, input_size_bytes, output_size_bytes, duration_ms, created_at"

// Add inserts a record, generating an identifier and timestamp when unset,
// and returns the stored row.
func (s *Store) Add(ctx context.Context, rec *Record) (*Record, error) {
	if rec == nil {
		return nil, errors.New("record is nil")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	args, err := json.Marshal(rec.Arguments)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO records (
            id, kind, title, input_path, output_path, video_codec, audio_codec,
            arguments_json, status, error_message, input_size_bytes,
            output_size_bytes, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.Kind),
		rec.Title,
		nullableString(rec.InputPath),
		nullableString(rec.OutputPath),
		nullableString(rec.VideoCodec),
		nullableString(rec.AudioCodec),
		string(args),
		string(rec.Status),
		nullableString(rec.ErrorMessage),
		nullableInt64(rec.InputSize),
		nullableInt64(rec.OutputSize),
		rec.Duration.Milliseconds(),
		rec.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	return s.Get(ctx, rec.ID)
}

// Get fetches a record by identifier. Unambiguous identifier prefixes are
// accepted so listed IDs can be abbreviated on the command line. A missing
// record yields (nil, nil).
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get record: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+recordColumns+` FROM records WHERE id LIKE ? ESCAPE '\' ORDER BY created_at DESC LIMIT 2`,
		escapeLikePattern(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get record by prefix: %w", err)
	}
	defer rows.Close()

	var matches []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("identifier %q is ambiguous", id)
	}
}

// List returns the most recent records, newest first, optionally filtered by
// kind. A non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int, kinds ...Kind) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	var args []any
	if len(kinds) > 0 {
		query += ` WHERE kind IN (` + makePlaceholders(len(kinds)) + `)`
		for _, kind := range kinds {
			args = append(args, string(kind))
		}
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes all records from the ledger.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id           string
		kind         string
		title        string
		inputPath    sql.NullString
		outputPath   sql.NullString
		videoCodec   sql.NullString
		audioCodec   sql.NullString
		argsJSON     sql.NullString
		status       string
		errorMessage sql.NullString
		inputSize    sql.NullInt64
		outputSize   sql.NullInt64
		durationMS   sql.NullInt64
		createdRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&kind,
		&title,
		&inputPath,
		&outputPath,
		&videoCodec,
		&audioCodec,
		&argsJSON,
		&status,
		&errorMessage,
		&inputSize,
		&outputSize,
		&durationMS,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	rec := &Record{
		ID:           id,
		Kind:         Kind(kind),
		Title:        title,
		InputPath:    inputPath.String,
		OutputPath:   outputPath.String,
		VideoCodec:   videoCodec.String,
		AudioCodec:   audioCodec.String,
		Status:       Status(status),
		ErrorMessage: errorMessage.String,
		InputSize:    inputSize.Int64,
		OutputSize:   outputSize.Int64,
		Duration:     time.Duration(durationMS.Int64) * time.Millisecond,
	}

	if argsJSON.Valid && argsJSON.String != "" {
		if err := json.Unmarshal([]byte(argsJSON.String), &rec.Arguments); err != nil {
			return nil, fmt.Errorf("decode arguments for %s: %w", id, err)
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		rec.CreatedAt = created
	}
	return rec, nil
}

// likeEscaper neutralizes LIKE wildcards so a command-line id prefix always
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(value string) string {
	return likeEscaper.Replace(value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value <= 0 {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
