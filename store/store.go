// Package store persists projects, their camera settings, alignment guides and
// daily photos in SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/soocke/facelog-go/domain/camera"
	"github.com/soocke/facelog-go/domain/project"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	// ErrProjectNotFound is returned when a save or load names an unknown project.
	ErrProjectNotFound = errors.New("store: project not found")
	// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and postgres.
	ErrUnsupportedDriver = errors.New("store: unsupported database driver")
	errNilProject        = errors.New("store: nil project")
)

// Store implements project.Store and project.Loader on database/sql.
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, logger *slog.Logger, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	s := &Store{db: db, driver: driver, logger: logger}
	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EnsureProject creates the project with default settings when missing.
func (s *Store) EnsureProject(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("store: empty project name")
	}
	d := camera.DefaultSettings()
	g := project.DefaultGuides()
	_, err := s.db.ExecContext(ctx, s.rebind(`
INSERT INTO project (name, camera_type, flash_mode, show_grid, center_x, center_y, eyes_x, eyes_y, mouth_x, mouth_y)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (name) DO NOTHING`),
		name, d.Type.String(), d.FlashMode.String(), d.ShowGrid,
		g.Center.X, g.Center.Y, g.Eyes.X, g.Eyes.Y, g.Mouth.X, g.Mouth.Y)
	if err != nil {
		return fmt.Errorf("ensure project %q: %w", name, err)
	}
	return nil
}

// LoadProject reads a project with its settings, guides and photos.
func (s *Store) LoadProject(ctx context.Context, name string) (*project.Project, error) {
	var typ, flash string
	p := &project.Project{Name: name, Photos: map[string]camera.Photo{}}
	g := &p.AlignmentGuides
	err := s.db.QueryRowContext(ctx, s.rebind(`
SELECT camera_type, flash_mode, show_grid, center_x, center_y, eyes_x, eyes_y, mouth_x, mouth_y
FROM project WHERE name = ?`), name).Scan(
		&typ, &flash, &p.CameraSettings.ShowGrid,
		&g.Center.X, &g.Center.Y, &g.Eyes.X, &g.Eyes.Y, &g.Mouth.X, &g.Mouth.Y)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %q: %w", name, err)
	}
	var ok bool
	if p.CameraSettings.Type, ok = camera.ParseCameraType(typ); !ok {
		return nil, fmt.Errorf("load project %q: bad camera type %q", name, typ)
	}
	if p.CameraSettings.FlashMode, ok = camera.ParseFlashMode(flash); !ok {
		return nil, fmt.Errorf("load project %q: bad flash mode %q", name, flash)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT date_key, uri FROM photo WHERE project_name = ?`), name)
	if err != nil {
		return nil, fmt.Errorf("load photos %q: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var date, uri string
		if err := rows.Scan(&date, &uri); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		p.Photos[date] = camera.Photo{URI: uri}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load photos %q: %w", name, err)
	}
	return p, nil
}

// SavePhoto records the photo for a date, replacing any earlier one.
func (s *Store) SavePhoto(ctx context.Context, req project.SavePhotoRequest) error {
	if req.DateKey == "" || req.PhotoURI == "" {
		return errors.New("store: photo needs a date and a uri")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save photo: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM project WHERE name = ?`), req.ProjectName).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, req.ProjectName)
	}
	if err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`
INSERT INTO photo (project_name, date_key, uri) VALUES (?, ?, ?)
ON CONFLICT (project_name, date_key) DO UPDATE SET uri = excluded.uri, saved_at = CURRENT_TIMESTAMP`),
		req.ProjectName, req.DateKey, req.PhotoURI); err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save photo: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("photo saved", "project", req.ProjectName, "date", req.DateKey, "uri", req.PhotoURI)
	}
	return nil
}

func (s *Store) SaveCameraSettings(ctx context.Context, req project.SaveSettingsRequest) error {
	if req.Project == nil {
		return errNilProject
	}
	cs := req.CameraSettings
	return s.updateProject(ctx, req.Project.Name, `UPDATE project SET camera_type = ?, flash_mode = ?, show_grid = ? WHERE name = ?`,
		cs.Type.String(), cs.FlashMode.String(), cs.ShowGrid, req.Project.Name)
}

func (s *Store) SaveAlignmentGuidePositions(ctx context.Context, req project.SaveGuidesRequest) error {
	if req.Project == nil {
		return errNilProject
	}
	g := req.AlignmentGuidePositions
	return s.updateProject(ctx, req.Project.Name,
		`UPDATE project SET center_x = ?, center_y = ?, eyes_x = ?, eyes_y = ?, mouth_x = ?, mouth_y = ? WHERE name = ?`,
		append(pointArgs(g.Center, g.Eyes, g.Mouth), req.Project.Name)...)
}

func (s *Store) updateProject(ctx context.Context, name, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("update project %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	return nil
}

func pointArgs(pts ...image.Point) []any {
	out := make([]any, 0, len(pts)*2)
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}

var (
	_ project.Store  = (*Store)(nil)
	_ project.Loader = (*Store)(nil)
)
