package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// InitDB opens the sqlite file at path and creates the journal table.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create upload journal table
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS upload_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		board_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		column_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		success INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create upload_results table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_upload_results_batch ON upload_results(batch_id)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create batch index: %w", err)
	}

	slog.Debug("database initialized", "path", path)
	return db, nil
}

// JournalService records the results of timeline write-backs. It never holds
// Monday.com data itself.
type JournalService struct {
	db *sql.DB
}

func NewJournalService(db *sql.DB) *JournalService {
	return &JournalService{db: db}
}

// Record stores one upload result and fills in its ID and CreatedAt.
func (s *JournalService) Record(r *UploadResult) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO upload_results
			(batch_id, board_id, item_id, name, column_id, start_date, end_date, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.BatchID, r.BoardID, r.ItemID, r.Name, r.ColumnID, r.StartDate, r.EndDate, r.Success, r.Error, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert upload result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read upload result id: %w", err)
	}
	r.ID = id
	return nil
}

// Recent returns the newest results first.
func (s *JournalService) Recent(limit int) ([]UploadResult, error) {
	return s.query(`
		SELECT id, batch_id, board_id, item_id, name, column_id, start_date, end_date, success, error, created_at
		FROM upload_results ORDER BY id DESC LIMIT ?`, limit)
}

// Batch returns every result of one bulk upload in the order they were written.
func (s *JournalService) Batch(batchID string) ([]UploadResult, error) {
	return s.query(`
		SELECT id, batch_id, board_id, item_id, name, column_id, start_date, end_date, success, error, created_at
		FROM upload_results WHERE batch_id = ? ORDER BY id ASC`, batchID)
}

// Count returns the number of journaled results.
func (s *JournalService) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM upload_results").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count upload results: %w", err)
	}
	return n, nil
}

func (s *JournalService) query(q string, args ...any) ([]UploadResult, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload results: %w", err)
	}
	defer rows.Close()

	results := []UploadResult{}
	for rows.Next() {
		var r UploadResult
		if err := rows.Scan(&r.ID, &r.BatchID, &r.BoardID, &r.ItemID, &r.Name, &r.ColumnID,
			&r.StartDate, &r.EndDate, &r.Success, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read upload results: %w", err)
	}
	return results, nil
}
