// Package sqlite provides a SQLite-backed accordion storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-unilabel/internal/storage/sqlitemigrate"
	"github.com/goliatone/go-unilabel/pkg/storage"
	"github.com/goliatone/go-unilabel/pkg/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists accordion state in SQLite.
type Store struct {
	sqlDB *sql.DB
	q     queryer
	inTx  bool
}

var _ storage.Store = (*Store)(nil)

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, q: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil || s.inTx {
		return nil
	}
	return s.sqlDB.Close()
}

// GetAccordion returns the accordion owned by a label.
func (s *Store) GetAccordion(ctx context.Context, unilabelID int64) (storage.Accordion, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Accordion{}, err
	}

	var record storage.Accordion
	var showIntro int64
	err := s.q.QueryRowContext(ctx,
		`SELECT id, unilabelid, showintro
		   FROM unilabeltype_accordion
		  WHERE unilabelid = ?`,
		unilabelID,
	).Scan(&record.ID, &record.UnilabelID, &showIntro)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Accordion{}, storage.ErrNotFound
		}
		return storage.Accordion{}, fmt.Errorf("get accordion: %w", err)
	}
	record.ShowIntro = showIntro != 0
	return record, nil
}

// ListSegments returns an accordion's segments in id order.
func (s *Store) ListSegments(ctx context.Context, accordionID int64) ([]storage.Segment, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT id, accordionid, COALESCE(heading, ''), COALESCE(content, '')
		   FROM unilabeltype_accordion_seg
		  WHERE accordionid = ?
		  ORDER BY id ASC`,
		accordionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	var segments []storage.Segment
	for rows.Next() {
		var segment storage.Segment
		if err := rows.Scan(&segment.ID, &segment.AccordionID, &segment.Heading, &segment.Content); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, segment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return segments, nil
}

// InsertAccordion inserts an accordion row and returns its id.
func (s *Store) InsertAccordion(ctx context.Context, record storage.Accordion) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	if record.UnilabelID <= 0 {
		return 0, fmt.Errorf("unilabel id is required")
	}

	res, err := s.q.ExecContext(ctx,
		`INSERT INTO unilabeltype_accordion (unilabelid, showintro) VALUES (?, ?)`,
		record.UnilabelID, boolToInt(record.ShowIntro),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("insert accordion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert accordion id: %w", err)
	}
	return id, nil
}

// UpdateAccordion writes the mutable accordion columns.
func (s *Store) UpdateAccordion(ctx context.Context, record storage.Accordion) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if record.ID <= 0 {
		return fmt.Errorf("accordion id is required")
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE unilabeltype_accordion
		    SET unilabelid = ?, showintro = ?
		  WHERE id = ?`,
		record.UnilabelID, boolToInt(record.ShowIntro), record.ID,
	)
	if err != nil {
		return fmt.Errorf("update accordion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update accordion rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteAccordion removes the accordion of a label.
func (s *Store) DeleteAccordion(ctx context.Context, unilabelID int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM unilabeltype_accordion WHERE unilabelid = ?`,
		unilabelID,
	); err != nil {
		return fmt.Errorf("delete accordion: %w", err)
	}
	return nil
}

// InsertSegment inserts one segment row and returns its id.
func (s *Store) InsertSegment(ctx context.Context, segment storage.Segment) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	if segment.AccordionID <= 0 {
		return 0, fmt.Errorf("accordion id is required")
	}

	res, err := s.q.ExecContext(ctx,
		`INSERT INTO unilabeltype_accordion_seg (accordionid, heading, content) VALUES (?, ?, ?)`,
		segment.AccordionID, segment.Heading, segment.Content,
	)
	if err != nil {
		return 0, fmt.Errorf("insert segment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert segment id: %w", err)
	}
	return id, nil
}

// DeleteSegments removes every segment of an accordion.
func (s *Store) DeleteSegments(ctx context.Context, accordionID int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM unilabeltype_accordion_seg WHERE accordionid = ?`,
		accordionID,
	); err != nil {
		return fmt.Errorf("delete segments: %w", err)
	}
	return nil
}

// WithTx runs fn inside one SQLite transaction. Nested calls reuse the
// surrounding transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx storage.Store) error) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("transaction func is required")
	}
	if s.inTx {
		return fn(s)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&Store{sqlDB: s.sqlDB, q: tx, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil || s.q == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
