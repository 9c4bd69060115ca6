package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/patrol/internal/grid"
)

// Obstruction kinds stored alongside a run.
const (
	KindLoop    = "loop"
	KindBlocked = "blocked"
)

// ErrRunNotFound is returned by ReadRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded solve.
type Run struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"` // assigned by the store
	GridDigest string `json:"grid_digest"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Detection  string `json:"detection"`
	Outcome    string `json:"outcome"`
	Visited    int    `json:"visited"`

	// Searched is false when the obstruction search was skipped; Trials,
	// Loops and the placement lists are then empty.
	Searched bool         `json:"searched"`
	Trials   int          `json:"trials"`
	Loops    []grid.Point `json:"loops,omitempty"`
	Blocked  []grid.Point `json:"blocked,omitempty"`
}

// LoopCount returns the number of loop placements.
func (r *Run) LoopCount() int {
	return len(r.Loops)
}

// WriteRun inserts r and its placements in one transaction and returns the
// assigned seq. Writing an ID twice is an error.
func (s *Store) WriteRun(ctx context.Context, r Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, grid_digest, width, height, detection, outcome, visited, searched, trials, loops)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.GridDigest,
		r.Width,
		r.Height,
		r.Detection,
		r.Outcome,
		r.Visited,
		r.Searched,
		r.Trials,
		len(r.Loops),
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("write run: seq: %w", err)
	}

	if err := insertObstructions(ctx, tx, r.ID, KindLoop, r.Loops); err != nil {
		return 0, err
	}
	if err := insertObstructions(ctx, tx, r.ID, KindBlocked, r.Blocked); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func insertObstructions(ctx context.Context, tx *sql.Tx, runID, kind string, ps []grid.Point) error {
	if len(ps) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO obstructions (run_id, x, y, kind)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write obstructions: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range ps {
		if _, err := stmt.ExecContext(ctx, runID, p.X, p.Y, kind); err != nil {
			return fmt.Errorf("write obstruction %s: %w", p, err)
		}
	}
	return nil
}

const runColumns = `seq, id, grid_digest, width, height, detection, outcome, visited, searched, trials`

// ReadRun returns the run with the given ID, placements included.
// Returns ErrRunNotFound (wrapped) if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}

	if err := s.loadObstructions(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns every run in seq order, placements included.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	return s.listRuns(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq ASC, id COLLATE BINARY ASC`)
}

// ListRunsByDigest returns the runs recorded for one grid digest.
func (s *Store) ListRunsByDigest(ctx context.Context, digest string) ([]Run, error) {
	return s.listRuns(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE grid_digest = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, digest)
}

func (s *Store) listRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	// Close before the follow-up queries: the store holds a single connection.
	rows.Close()

	for i := range runs {
		if err := s.loadObstructions(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var r Run
	err := sc.Scan(
		&r.Seq,
		&r.ID,
		&r.GridDigest,
		&r.Width,
		&r.Height,
		&r.Detection,
		&r.Outcome,
		&r.Visited,
		&r.Searched,
		&r.Trials,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) loadObstructions(ctx context.Context, r *Run) error {
	rows, err := s.Query(ctx, `
		SELECT x, y, kind FROM obstructions
		WHERE run_id = ?
		ORDER BY y ASC, x ASC
	`, r.ID)
	if err != nil {
		return fmt.Errorf("query obstructions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p grid.Point
		var kind string
		if err := rows.Scan(&p.X, &p.Y, &kind); err != nil {
			return fmt.Errorf("scan obstruction: %w", err)
		}
		switch kind {
		case KindLoop:
			r.Loops = append(r.Loops, p)
		case KindBlocked:
			r.Blocked = append(r.Blocked, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate obstructions: %w", err)
	}
	return nil
}
