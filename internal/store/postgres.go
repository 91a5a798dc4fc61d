package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const defaultPoolSize = 4

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("not found")

// PostgresStore implements Store using pgxpool. Its methods are exercised by
// the integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Option configures the connection pool.
type Option func(*pgxpool.Config)

// WithMaxConns caps the pool size. Non-positive values are ignored.
func WithMaxConns(n int) Option {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // pool sizes are small
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...Option) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// InsertRun records the start of a smoke run.
func (s *PostgresStore) InsertRun(ctx context.Context, run *domain.SmokeRun) error {
	if _, err := s.pool.Exec(ctx, queryInsertRun, run.ID, run.StartedAt, run.Trigger); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// CompleteRun stores the completion time and verdict of a run.
func (s *PostgresStore) CompleteRun(ctx context.Context, run *domain.SmokeRun) error {
	tag, err := s.pool.Exec(ctx, queryCompleteRun, run.ID, run.CompletedAt, run.Passed)
	if err != nil {
		return fmt.Errorf("completing run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("completing run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

// GetRun returns a run together with its check results.
func (s *PostgresStore) GetRun(ctx context.Context, id string) (*domain.SmokeRun, error) {
	run := &domain.SmokeRun{}
	err := scanRun(s.pool.QueryRow(ctx, queryGetRun, id), run)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	results, err := s.ListCheckResults(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Results = results

	return run, nil
}

// ListRuns returns runs matching opts, newest first, and the total match
// count. Results are not loaded.
func (s *PostgresStore) ListRuns(ctx context.Context, opts *RunQuery) ([]domain.SmokeRun, int, error) {
	if opts == nil {
		opts = &RunQuery{}
	}
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting runs: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SmokeRun
	for rows.Next() {
		var r domain.SmokeRun
		if err := scanRun(rows, &r); err != nil {
			return nil, 0, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, total, rows.Err()
}

// PruneRuns deletes runs started before now minus olderThan. Check results
// go with them. Returns the number of runs deleted.
func (s *PostgresStore) PruneRuns(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteOldRuns, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// InsertCheckResult stores one check result.
func (s *PostgresStore) InsertCheckResult(ctx context.Context, res *domain.CheckResult) error {
	args := pgx.NamedArgs{
		"run_id":      res.RunID,
		"name":        res.Name,
		"status":      string(res.Status),
		"message":     res.Message,
		"details":     res.Details,
		"duration_ms": res.DurationMS,
	}

	if _, err := s.pool.Exec(ctx, queryInsertCheckResult, args); err != nil {
		return fmt.Errorf("inserting check result %s: %w", res.Name, err)
	}
	return nil
}

// ListCheckResults returns a run's check results in insertion order.
func (s *PostgresStore) ListCheckResults(ctx context.Context, runID string) ([]domain.CheckResult, error) {
	rows, err := s.pool.Query(ctx, queryListCheckResults, runID)
	if err != nil {
		return nil, fmt.Errorf("querying check results: %w", err)
	}
	defer rows.Close()

	var results []domain.CheckResult
	for rows.Next() {
		var r domain.CheckResult
		if err := rows.Scan(
			&r.RunID, &r.Name, &r.Status, &r.Message, &r.Details, &r.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("scanning check result: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable, r *domain.SmokeRun) error {
	return row.Scan(&r.ID, &r.StartedAt, &r.CompletedAt, &r.Passed, &r.Trigger)
}
