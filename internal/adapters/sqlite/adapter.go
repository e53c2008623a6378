// Package sqlite provides a SQLite-backed cache for raw analyses and access tokens.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/ports"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the analysis repository and token store ports for SQLite
type Adapter struct {
	db *sql.DB
}

var (
	_ ports.AnalysisRepository = (*Adapter)(nil)
	_ ports.TokenStore         = (*Adapter)(nil)
)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite adapter: failed to open db: %w", err)
	}

	// every connection to :memory: is a separate database
	if strings.Contains(storagePath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite adapter: failed to ping db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("sqlite adapter: migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// GetAnalysis loads a cached raw analysis.
func (a *Adapter) GetAnalysis(ctx context.Context, trackID string) (domain.TrackAnalysis, error) {
	row := a.db.QueryRowContext(ctx, "SELECT track_id, source, duration, segments FROM analyses WHERE track_id = ?", trackID)

	var analysis domain.TrackAnalysis
	var source, segments string
	if err := row.Scan(&analysis.TrackID, &source, &analysis.Duration, &segments); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrackAnalysis{}, domain.ErrNotFound
		}
		return domain.TrackAnalysis{}, fmt.Errorf("sqlite adapter: failed to load analysis: %w", err)
	}

	analysis.Source = domain.AnalysisSource(source)

	if err := json.Unmarshal([]byte(segments), &analysis.Segments); err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("sqlite adapter: failed to decode segments for %s: %w", trackID, err)
	}

	return analysis, nil
}

// SaveAnalysis upserts a raw analysis keyed by track ID.
func (a *Adapter) SaveAnalysis(ctx context.Context, analysis domain.TrackAnalysis) error {
	if analysis.TrackID == "" {
		return fmt.Errorf("sqlite adapter: analysis has no track id")
	}

	segments, err := json.Marshal(analysis.Segments)
	if err != nil {
		return fmt.Errorf("sqlite adapter: failed to encode segments: %w", err)
	}

	source := analysis.Source
	if source == "" {
		source = domain.SourceFullTrack
	}

	query := `
		INSERT INTO analyses (track_id, source, duration, segments, fetched_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(track_id) DO UPDATE SET
			source=excluded.source,
			duration=excluded.duration,
			segments=excluded.segments,
			fetched_at=excluded.fetched_at;
	`
	if _, err := a.db.ExecContext(ctx, query, analysis.TrackID, string(source), analysis.Duration, string(segments)); err != nil {
		return fmt.Errorf("sqlite adapter: failed to save analysis %s: %w", analysis.TrackID, err)
	}

	return nil
}

// LoadToken returns the stored token for key, expired or not.
func (a *Adapter) LoadToken(ctx context.Context, key string) (domain.AccessToken, error) {
	row := a.db.QueryRowContext(ctx, "SELECT access_token, token_type, expiry FROM tokens WHERE key = ?", key)

	var tok domain.AccessToken
	var tokenType sql.NullString
	var expiry sql.NullInt64
	if err := row.Scan(&tok.Value, &tokenType, &expiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AccessToken{}, domain.ErrNotFound
		}
		return domain.AccessToken{}, fmt.Errorf("sqlite adapter: failed to load token: %w", err)
	}
	if tokenType.Valid {
		tok.Type = tokenType.String
	}
	if expiry.Valid && expiry.Int64 > 0 {
		tok.Expiry = time.Unix(expiry.Int64, 0)
	}

	return tok, nil
}

// SaveToken upserts the token for key.
func (a *Adapter) SaveToken(ctx context.Context, key string, tok domain.AccessToken) error {
	var expiry int64
	if !tok.Expiry.IsZero() {
		expiry = tok.Expiry.Unix()
	}

	query := `
		INSERT INTO tokens (key, access_token, token_type, expiry)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			access_token=excluded.access_token,
			token_type=excluded.token_type,
			expiry=excluded.expiry;
	`
	if _, err := a.db.ExecContext(ctx, query, key, tok.Value, tok.Type, expiry); err != nil {
		return fmt.Errorf("sqlite adapter: failed to save token: %w", err)
	}

	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		track_id TEXT PRIMARY KEY,
		source TEXT NOT NULL DEFAULT 'analysis',
		duration REAL NOT NULL,
		segments TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tokens (
		key TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		token_type TEXT,
		expiry INTEGER
	);
	`
	_, err := a.db.Exec(query)
	return err
}
