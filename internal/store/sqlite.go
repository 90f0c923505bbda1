package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"memeticFlowShop/internal/bench"

	_ "modernc.org/sqlite"
)

// SolveRecord is one finished solve. Only the final answer is kept;
// population state is never persisted.
type SolveRecord struct {
	ID          string
	Instance    string
	Jobs        int
	Machines    int
	Seed        int64
	Makespan    int
	Permutation []int
	Generations int
	Evaluations int
	Duration    time.Duration
	Config      map[string]any
	CreatedAt   time.Time
}

// Benchmark is a stored benchmark run with its host description.
type Benchmark struct {
	ID        string
	Host      bench.SysInfo
	CreatedAt time.Time
}

// SQLiteStore keeps benchmark and solve history in SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    time.Now,
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Benchmarks ---

// SaveBenchmark stores host info and records in one transaction and returns
// the new benchmark id.
func (s *SQLiteStore) SaveBenchmark(ctx context.Context, host bench.SysInfo, records []bench.Record) (string, error) {
	id := "bench_" + uuid.NewString()
	s.logger.Debug("sql", "op", "insert", "table", "benchmarks", "id", id, "records", len(records))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO benchmarks (id, platform, cpu, cores, ram, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, host.Platform, host.CPU, host.Cores, host.RAM, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert benchmark: %w", err)
	}

	for i, r := range records {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bench_records (benchmark_id, position, algo, jobs, machines, runs, lower_bound,
				time_best_ms, time_mean_ms, time_std_ms, makespan_best, makespan_mean, makespan_std, evaluations_mean)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, r.Algo, r.Jobs, r.Machines, r.Runs, r.LowerBound,
			r.TimeBestMs, r.TimeMeanMs, r.TimeStdMs,
			r.MakespanBest, r.MakespanMean, r.MakespanStd, r.EvaluationsMean,
		)
		if err != nil {
			return "", fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetBenchmark returns the benchmark header, or nil if not found.
func (s *SQLiteStore) GetBenchmark(ctx context.Context, id string) (*Benchmark, error) {
	s.logger.Debug("sql", "op", "select", "table", "benchmarks", "id", id)

	var b Benchmark
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, platform, cpu, cores, ram, created_at FROM benchmarks WHERE id = ?`, id,
	).Scan(&b.ID, &b.Host.Platform, &b.Host.CPU, &b.Host.Cores, &b.Host.RAM, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &b, nil
}

// ListRecords returns the records of one benchmark in insertion order.
func (s *SQLiteStore) ListRecords(ctx context.Context, benchmarkID string) ([]bench.Record, error) {
	s.logger.Debug("sql", "op", "select", "table", "bench_records", "benchmark_id", benchmarkID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT algo, jobs, machines, runs, lower_bound,
			time_best_ms, time_mean_ms, time_std_ms, makespan_best, makespan_mean, makespan_std, evaluations_mean
		 FROM bench_records WHERE benchmark_id = ? ORDER BY position`, benchmarkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []bench.Record
	for rows.Next() {
		var r bench.Record
		if err := rows.Scan(&r.Algo, &r.Jobs, &r.Machines, &r.Runs, &r.LowerBound,
			&r.TimeBestMs, &r.TimeMeanMs, &r.TimeStdMs,
			&r.MakespanBest, &r.MakespanMean, &r.MakespanStd, &r.EvaluationsMean); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// --- Solves ---

// SaveSolve stores rec and returns its id. A missing id or timestamp is filled in.
func (s *SQLiteStore) SaveSolve(ctx context.Context, rec SolveRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = "solve_" + uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	s.logger.Debug("sql", "op", "insert", "table", "solves", "id", rec.ID)

	permJSON, err := json.Marshal(rec.Permutation)
	if err != nil {
		return "", fmt.Errorf("marshal permutation: %w", err)
	}
	cfg := rec.Config
	if cfg == nil {
		cfg = map[string]any{}
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO solves (id, instance, jobs, machines, seed, makespan, permutation,
			generations, evaluations, duration_ms, config, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Instance, rec.Jobs, rec.Machines, rec.Seed, rec.Makespan, string(permJSON),
		rec.Generations, rec.Evaluations, float64(rec.Duration.Microseconds())/1000.0,
		string(cfgJSON), rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// GetSolve returns a stored solve, or nil if not found.
func (s *SQLiteStore) GetSolve(ctx context.Context, id string) (*SolveRecord, error) {
	s.logger.Debug("sql", "op", "select", "table", "solves", "id", id)

	var rec SolveRecord
	var permJSON, cfgJSON, createdAt string
	var durationMs float64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, instance, jobs, machines, seed, makespan, permutation,
			generations, evaluations, duration_ms, config, created_at
		 FROM solves WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Instance, &rec.Jobs, &rec.Machines, &rec.Seed, &rec.Makespan, &permJSON,
		&rec.Generations, &rec.Evaluations, &durationMs, &cfgJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(permJSON), &rec.Permutation); err != nil {
		return nil, fmt.Errorf("unmarshal permutation: %w", err)
	}
	if err := json.Unmarshal([]byte(cfgJSON), &rec.Config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	rec.Duration = time.Duration(durationMs * float64(time.Millisecond))
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &rec, nil
}

// BestSolve returns the lowest-makespan solve recorded for an instance,
// or nil if there is none.
func (s *SQLiteStore) BestSolve(ctx context.Context, instance string) (*SolveRecord, error) {
	s.logger.Debug("sql", "op", "select_best", "table", "solves", "instance", instance)

	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM solves WHERE instance = ? ORDER BY makespan ASC, created_at ASC LIMIT 1`, instance,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.GetSolve(ctx, id)
}
