package results

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/superego-harness/internal/experiment"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id                    TEXT PRIMARY KEY,
	question_a                INTEGER NOT NULL,
	question_b                INTEGER NOT NULL,
	seed                      INTEGER NOT NULL,
	num_trials                INTEGER NOT NULL,
	config_json               TEXT NOT NULL,
	final_karma               REAL NOT NULL,
	final_error_rate          REAL NOT NULL,
	final_windowed_error_rate REAL NOT NULL,
	created_at                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trials (
	run_id              TEXT NOT NULL,
	iteration           INTEGER NOT NULL,
	answer              INTEGER NOT NULL,
	correct             INTEGER NOT NULL,
	karma               REAL NOT NULL,
	error_rate          REAL NOT NULL,
	windowed_error_rate REAL NOT NULL,
	PRIMARY KEY (run_id, iteration),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`
// #endregion schema

// #region run-record
// RunRecord is one finished experiment as stored in the runs table. The
// controller's live state is never persisted; only completed histories are.
type RunRecord struct {
	RunID                  string
	QuestionA              int
	QuestionB              int
	Seed                   int64
	NumTrials              int
	ConfigJSON             string
	FinalKarma             float64
	FinalErrorRate         float64
	FinalWindowedErrorRate float64
	CreatedAt              time.Time
}
// #endregion run-record

// #region store-struct
// Store persists finished experiment runs in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for ad-hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region save-run

// SaveRun inserts a finished run and its full trial history atomically and
// returns the generated run ID.
func (s *Store) SaveRun(config experiment.Config, seed int64, history experiment.History) (string, error) {
	runID := uuid.New().String()
	now := time.Now().UTC()

	configJSON, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	finalKarma := config.Karma.Initial
	finalErrorRate := 1.0
	finalWindowedErrorRate := 1.0
	if len(history) > 0 {
		last := history[len(history)-1]
		finalKarma = last.Karma
		finalErrorRate = last.ErrorRate
		finalWindowedErrorRate = last.WindowedErrorRate
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, question_a, question_b, seed, num_trials, config_json,
		                   final_karma, final_error_rate, final_windowed_error_rate, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, config.Question.A, config.Question.B, seed, len(history), string(configJSON),
		finalKarma, finalErrorRate, finalWindowedErrorRate, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO trials (run_id, iteration, answer, correct, karma, error_rate, windowed_error_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("prepare trials: %w", err)
	}
	defer stmt.Close()

	for _, rec := range history {
		correct := 0
		if rec.Correct {
			correct = 1
		}
		if _, err := stmt.Exec(runID, rec.Iteration, rec.Answer, correct,
			rec.Karma, rec.ErrorRate, rec.WindowedErrorRate); err != nil {
			return "", fmt.Errorf("insert trial %d: %w", rec.Iteration, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// #endregion save-run

// #region get-run

// GetRun retrieves one run's metadata by ID.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var createdStr string

	err := s.db.QueryRow(
		`SELECT run_id, question_a, question_b, seed, num_trials, config_json,
		        final_karma, final_error_rate, final_windowed_error_rate, created_at
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.QuestionA, &rec.QuestionB, &rec.Seed, &rec.NumTrials, &rec.ConfigJSON,
		&rec.FinalKarma, &rec.FinalErrorRate, &rec.FinalWindowedErrorRate, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// Config unmarshals the stored experiment configuration.
func (r RunRecord) Config() (experiment.Config, error) {
	var cfg experiment.Config
	if err := json.Unmarshal([]byte(r.ConfigJSON), &cfg); err != nil {
		return experiment.Config{}, fmt.Errorf("unmarshal config for run %s: %w", r.RunID, err)
	}
	return cfg, nil
}

// #endregion get-run

// #region list-runs

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, question_a, question_b, seed, num_trials, config_json,
		        final_karma, final_error_rate, final_windowed_error_rate, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.QuestionA, &rec.QuestionB, &rec.Seed, &rec.NumTrials,
			&rec.ConfigJSON, &rec.FinalKarma, &rec.FinalErrorRate, &rec.FinalWindowedErrorRate,
			&createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// #endregion list-runs

// #region get-history

// GetHistory reloads the full trial history for a run, in iteration order.
func (s *Store) GetHistory(runID string) (experiment.History, error) {
	rows, err := s.db.Query(
		`SELECT iteration, answer, correct, karma, error_rate, windowed_error_rate
		 FROM trials WHERE run_id = ? ORDER BY iteration ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get history %s: %w", runID, err)
	}
	defer rows.Close()

	var history experiment.History
	for rows.Next() {
		var rec experiment.TrialRecord
		var correct int
		if err := rows.Scan(&rec.Iteration, &rec.Answer, &correct,
			&rec.Karma, &rec.ErrorRate, &rec.WindowedErrorRate); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		rec.Correct = correct != 0
		history = append(history, rec)
	}
	return history, rows.Err()
}

// #endregion get-history
