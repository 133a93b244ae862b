package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/travelagency/admin/internal/platform/diagnostics"
	sqlitemigrate "github.com/travelagency/admin/internal/platform/storage/sqlitemigrate"
	"github.com/travelagency/admin/internal/services/admin/storage"
	"github.com/travelagency/admin/internal/services/admin/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// timeFormat is second-precision UTC so stored values compare as text.
const timeFormat = "2006-01-02T15:04:05Z"

// Store provides a SQLite-backed store implementing admin storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

type options struct {
	seed bool
}

// Option configures Open.
type Option func(*options)

// WithDemoData applies the demo seed migrations after the schema.
func WithDemoData() Option {
	return func(o *options) { o.seed = true }
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	if dir := filepath.Dir(filepath.Clean(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(ctx, cfg.seed); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations(ctx context.Context, seed bool) error {
	if err := sqlitemigrate.Apply(ctx, s.sqlDB, migrations.FS, "."); err != nil {
		return err
	}
	if seed {
		return sqlitemigrate.Apply(ctx, s.sqlDB, migrations.FS, migrations.SeedRoot)
	}
	return nil
}

// monthBounds returns the starts of the previous, current and next calendar
// months containing now, in UTC.
func monthBounds(now time.Time) (last, current, next time.Time) {
	now = now.UTC()
	current = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return current.AddDate(0, -1, 0), current, current.AddDate(0, 1, 0)
}

// DashboardStats aggregates user and trip counts for the month of now.
func (s *Store) DashboardStats(ctx context.Context, now time.Time) (storage.DashboardStats, error) {
	if s == nil || s.sqlDB == nil {
		return storage.DashboardStats{}, fmt.Errorf("storage is not configured")
	}
	last, current, next := monthBounds(now)
	lastStart, currentStart, nextStart := last.Format(timeFormat), current.Format(timeFormat), next.Format(timeFormat)

	var stats storage.DashboardStats
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE joined_at >= ?2 AND joined_at < ?3),
    COUNT(*) FILTER (WHERE joined_at >= ?1 AND joined_at < ?2),
    COUNT(*) FILTER (WHERE status = 'user'),
    COUNT(*) FILTER (WHERE status = 'user' AND joined_at >= ?2 AND joined_at < ?3),
    COUNT(*) FILTER (WHERE status = 'user' AND joined_at >= ?1 AND joined_at < ?2)
FROM users`, lastStart, currentStart, nextStart)
	if err := row.Scan(
		&stats.TotalUsers,
		&stats.UsersJoined.CurrentMonth,
		&stats.UsersJoined.LastMonth,
		&stats.ActiveUsers,
		&stats.ActiveUsersMonth.CurrentMonth,
		&stats.ActiveUsersMonth.LastMonth,
	); err != nil {
		return storage.DashboardStats{}, fmt.Errorf("query user stats: %w", err)
	}

	row = s.sqlDB.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE created_at >= ?2 AND created_at < ?3),
    COUNT(*) FILTER (WHERE created_at >= ?1 AND created_at < ?2)
FROM trips`, lastStart, currentStart, nextStart)
	if err := row.Scan(&stats.TotalTrips, &stats.TripsCreated.CurrentMonth, &stats.TripsCreated.LastMonth); err != nil {
		return storage.DashboardStats{}, fmt.Errorf("query trip stats: %w", err)
	}
	return stats, nil
}

// RecentTrips returns up to limit trips, newest first.
func (s *Store) RecentTrips(ctx context.Context, limit int) ([]storage.Trip, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return []storage.Trip{}, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, tags, image_url, location, estimated_price, duration, created_at
FROM trips
ORDER BY created_at DESC, id
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()

	trips := make([]storage.Trip, 0, limit)
	for rows.Next() {
		var (
			trip      storage.Trip
			tags      string
			createdAt string
		)
		if err := rows.Scan(&trip.ID, &trip.Name, &tags, &trip.ImageURL, &trip.Location, &trip.EstimatedPrice, &trip.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trip.Tags = splitTags(tags)
		if trip.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("parse trip %s created_at: %w", trip.ID, err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

// ListUsers returns every user, most recently joined first, with the number
// of trips each created.
func (s *Store) ListUsers(ctx context.Context) ([]storage.User, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT u.id, u.name, u.email, u.image_url, u.joined_at, u.status, COUNT(t.id)
FROM users u
LEFT JOIN trips t ON t.user_id = u.id
GROUP BY u.id
ORDER BY u.joined_at DESC, u.id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []storage.User{}
	for rows.Next() {
		var (
			user     storage.User
			joinedAt string
		)
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.ImageURL, &joinedAt, &user.Status, &user.ItineraryCount); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if user.JoinedAt, err = time.Parse(timeFormat, joinedAt); err != nil {
			return nil, fmt.Errorf("parse user %s joined_at: %w", user.ID, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// AppendDiagnostic persists one diagnostic record.
func (s *Store) AppendDiagnostic(ctx context.Context, rec diagnostics.Record) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	recordedAt := rec.Time
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	attrs := rec.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode diagnostic attrs: %w", err)
	}
	errText := ""
	if rec.Err != nil {
		errText = rec.Err.Error()
	}
	level := rec.Level
	if level == "" {
		level = diagnostics.LevelInfo
	}
	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO diagnostics (recorded_at, level, event, message, error, attrs)
VALUES (?, ?, ?, ?, ?, ?)`,
		recordedAt.UTC().Format(timeFormat), string(level), rec.Event, rec.Message, errText, string(attrsJSON),
	); err != nil {
		return fmt.Errorf("insert diagnostic: %w", err)
	}
	return nil
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(ctx context.Context, user storage.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	status := user.Status
	if status == "" {
		status = storage.StatusUser
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT OR REPLACE INTO users (id, name, email, image_url, joined_at, status)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.ImageURL, user.JoinedAt.UTC().Format(timeFormat), status)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// PutTrip inserts or replaces a trip owned by userID (may be empty).
func (s *Store) PutTrip(ctx context.Context, userID string, trip storage.Trip) error {
	if strings.TrimSpace(trip.ID) == "" {
		return fmt.Errorf("trip id is required")
	}
	var owner any
	if userID != "" {
		owner = userID
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT OR REPLACE INTO trips (id, user_id, name, tags, image_url, location, estimated_price, duration, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, owner, trip.Name, strings.Join(trip.Tags, ","), trip.ImageURL, trip.Location, trip.EstimatedPrice, trip.Duration, trip.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("put trip: %w", err)
	}
	return nil
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

var _ storage.Store = (*Store)(nil)
