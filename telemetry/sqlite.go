package telemetry

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSink persists Config/PositionSearch/Probe records to a SQLite
// database via the pure-Go modernc.org/sqlite driver — no cgo, so the
// engine binary stays a single static executable. Every method is called
// synchronously from the search thread, per §5 ("invoked synchronously
// from the search thread with ownership of the emitted record
// transferred to the sink"); callers that want this off the search
// thread's critical path should wrap SQLiteSink themselves.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLiteSink opens (and, if necessary, creates) dsn and ensures the
// three record tables exist.
func OpenSQLiteSink(dsn string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			max_search_depth INTEGER NOT NULL,
			algorithm_used TEXT NOT NULL,
			conspiracy_search_used INTEGER NOT NULL,
			bucket_size INTEGER,
			num_buckets INTEGER,
			conspiracy_merge_fn TEXT,
			transposition_table_used INTEGER NOT NULL,
			minimum_transposition_depth INTEGER,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS position_search (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			uci_position TEXT NOT NULL,
			depth INTEGER NOT NULL,
			time_taken INTEGER NOT NULL,
			nodes_evaluated INTEGER NOT NULL,
			evaluation TEXT NOT NULL,
			conspiracy_counter TEXT,
			move_num INTEGER NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mt_search (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position_search_id INTEGER NOT NULL,
			test_value TEXT NOT NULL,
			time_taken INTEGER NOT NULL,
			nodes_evaluated INTEGER NOT NULL,
			eval_bound TEXT NOT NULL,
			conspiracy_counter TEXT,
			search_num INTEGER NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("telemetry: migrate: %w", err)
		}
	}
	return nil
}

// InsertConfig records one run's fixed search configuration, returning
// its row id for use as PositionSearchRecord.RunID.
func (s *SQLiteSink) InsertConfig(c ConfigRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO config (
			max_search_depth, algorithm_used, conspiracy_search_used,
			bucket_size, num_buckets, conspiracy_merge_fn,
			transposition_table_used, minimum_transposition_depth, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.MaxDepth, string(c.Algorithm), c.ConspiracyUsed,
		c.BucketSize, c.NumBuckets, mergeFnString(c.MergeFn),
		c.TranspositionTableUsed, c.TTMinimumDepth, c.Timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("telemetry: insert config: %w", err)
	}
	return res.LastInsertId()
}

// InsertPositionSearch records one completed iterative-deepening depth,
// returning its row id for use as ProbeRecord.PositionSearchID.
func (s *SQLiteSink) InsertPositionSearch(r PositionSearchRecord) (int64, error) {
	var conspiracy interface{}
	if r.Conspiracy != "" {
		conspiracy = r.Conspiracy
	}
	res, err := s.db.Exec(
		`INSERT INTO position_search (
			run_id, uci_position, depth, time_taken, nodes_evaluated,
			evaluation, conspiracy_counter, move_num, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.UCIPosition, r.Depth, r.TimeMS, r.Nodes,
		r.Evaluation, conspiracy, r.MoveNum, r.Timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("telemetry: insert position_search: %w", err)
	}
	return res.LastInsertId()
}

// InsertProbe records one MT invocation inside an MTD iteration.
func (s *SQLiteSink) InsertProbe(p ProbeRecord) error {
	var conspiracy interface{}
	if p.Conspiracy != "" {
		conspiracy = p.Conspiracy
	}
	_, err := s.db.Exec(
		`INSERT INTO mt_search (
			position_search_id, test_value, time_taken, nodes_evaluated,
			eval_bound, conspiracy_counter, search_num, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PositionSearchID, p.TestValue, p.TimeMS, p.Nodes,
		p.EvalBound, conspiracy, p.ProbeIndex, p.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("telemetry: insert mt_search: %w", err)
	}
	return nil
}

func mergeFnString(fn *ConspiracyMergeFn) interface{} {
	if fn == nil {
		return nil
	}
	return string(*fn)
}

// Close closes the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
