// Package history records listening history in a local SQLite database
// and answers questions about it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages persistent listening history using SQLite
type Store struct {
	db *sql.DB
}

// Play is one recorded listen of a track
type Play struct {
	ID        int64
	TrackID   string
	TrackName string
	Artist    string
	Album     string
	AlbumID   string
	Duration  time.Duration
	PlayedAt  time.Time
}

// TrackCount is a track with its play count over some range
type TrackCount struct {
	TrackID   string
	TrackName string
	Artist    string
	Plays     int
}

// NewStore creates a new history store backed by SQLite
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool size to 1 for in-memory databases to ensure consistency
	// For file-based databases, this still works well for our use case
	db.SetMaxOpenConns(1)

	// Configure SQLite for optimal performance and safety
	pragmas := []string{
		"PRAGMA foreign_keys = ON",    // Enforce foreign key constraints
		"PRAGMA busy_timeout = 10000", // Wait up to 10 seconds on lock
		"PRAGMA synchronous = NORMAL", // Balance between safety and performance
		"PRAGMA journal_mode = WAL",   // Write-Ahead Logging for concurrent access
		"PRAGMA temp_store = MEMORY",  // Use memory for temp tables
		"PRAGMA cache_size = -64000",  // 64MB cache
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	// Create the schema
	schema := `
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			track_id TEXT NOT NULL,
			track_name TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			album_id TEXT,
			duration INTEGER NOT NULL,
			played_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_played_at ON plays(played_at);
		CREATE INDEX IF NOT EXISTS idx_track_played ON plays(track_id, played_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add records a single play
func (s *Store) Add(ctx context.Context, play Play) (int64, error) {
	query := `
		INSERT INTO plays (track_id, track_name, artist, album, album_id, duration, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		play.TrackID,
		play.TrackName,
		play.Artist,
		play.Album,
		play.AlbumID,
		int64(play.Duration.Seconds()),
		play.PlayedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, nil
}

// AddBatch records several plays in one transaction. Plays whose exact
// track and played_at pair is already recorded are skipped, so a backfill
// from the recently-played endpoint can overlap previously seen plays.
func (s *Store) AddBatch(ctx context.Context, plays []Play) (int, error) {
	if len(plays) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plays (track_id, track_name, artist, album, album_id, duration, played_at)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM plays WHERE track_id = ? AND played_at = ?
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, play := range plays {
		result, err := stmt.ExecContext(ctx,
			play.TrackID,
			play.TrackName,
			play.Artist,
			play.Album,
			play.AlbumID,
			int64(play.Duration.Seconds()),
			play.PlayedAt.Unix(),
			play.TrackID,
			play.PlayedAt.Unix(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert play for %s: %w", play.TrackID, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// Recent retrieves the newest plays, most recent first
// Optionally limits the number of results
func (s *Store) Recent(ctx context.Context, limit int) ([]Play, error) {
	query := `
		SELECT id, track_id, track_name, artist, COALESCE(album, ''), COALESCE(album_id, ''), duration, played_at
		FROM plays
		ORDER BY played_at DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent plays: %w", err)
	}
	defer rows.Close()

	return scanPlays(rows)
}

// Since retrieves all plays recorded at or after the cutoff, oldest first
func (s *Store) Since(ctx context.Context, cutoff time.Time) ([]Play, error) {
	query := `
		SELECT id, track_id, track_name, artist, COALESCE(album, ''), COALESCE(album_id, ''), duration, played_at
		FROM plays
		WHERE played_at >= ?
		ORDER BY played_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	return scanPlays(rows)
}

// TopTracks aggregates play counts since the cutoff, most played first
func (s *Store) TopTracks(ctx context.Context, cutoff time.Time, limit int) ([]TrackCount, error) {
	query := `
		SELECT track_id, track_name, artist, COUNT(*) AS plays
		FROM plays
		WHERE played_at >= ?
		GROUP BY track_id
		ORDER BY plays DESC, MAX(played_at) DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, cutoff.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query top tracks: %w", err)
	}
	defer rows.Close()

	var counts []TrackCount
	for rows.Next() {
		var tc TrackCount
		if err := rows.Scan(&tc.TrackID, &tc.TrackName, &tc.Artist, &tc.Plays); err != nil {
			return nil, fmt.Errorf("failed to scan track count: %w", err)
		}
		counts = append(counts, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating track counts: %w", err)
	}

	return counts, nil
}

// TrackIDs returns the distinct track ids played since the cutoff
func (s *Store) TrackIDs(ctx context.Context, cutoff time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT track_id
		FROM plays
		WHERE played_at >= ?
		ORDER BY track_id
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query track ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan track id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating track ids: %w", err)
	}

	return ids, nil
}

// Count returns the number of recorded plays
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM plays").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}

	return count, nil
}

// Cleanup removes plays older than the given age to prevent unbounded growth
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	result, err := s.db.ExecContext(ctx, "DELETE FROM plays WHERE played_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old plays: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// scanPlays reads play rows produced by the standard column list
func scanPlays(rows *sql.Rows) ([]Play, error) {
	var plays []Play
	for rows.Next() {
		var p Play
		var durationSecs int64
		var playedAtUnix int64

		err := rows.Scan(
			&p.ID,
			&p.TrackID,
			&p.TrackName,
			&p.Artist,
			&p.Album,
			&p.AlbumID,
			&durationSecs,
			&playedAtUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}

		p.Duration = time.Duration(durationSecs) * time.Second
		p.PlayedAt = time.Unix(playedAtUnix, 0)

		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plays: %w", err)
	}

	return plays, nil
}
