package push

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meltforce/liftplan/internal/models"
	_ "modernc.org/sqlite"
)

// StateDB tracks which routines have been pushed to avoid sending duplicates.
type StateDB struct {
	db *sql.DB
}

// Record is one pushed routine.
type Record struct {
	Hash      string
	RoutineID string
	Name      string
	PushedAt  time.Time
}

// OpenStateDB opens (or creates) the SQLite state database at path.
func OpenStateDB(path string) (*StateDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pushed_routines (
		hash       TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		name       TEXT NOT NULL,
		pushed_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsPushed reports whether a routine with this content hash was pushed.
func (s *StateDB) IsPushed(hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pushed_routines WHERE hash = ?`, hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPushed records that a routine was stored on the server.
func (s *StateDB) MarkPushed(hash, routineID, name string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pushed_routines (hash, routine_id, name, pushed_at) VALUES (?, ?, ?, ?)`,
		hash, routineID, name, time.Now().UTC(),
	)
	return err
}

// History returns the most recent pushes, newest first.
func (s *StateDB) History(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT hash, routine_id, name, pushed_at FROM pushed_routines ORDER BY pushed_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Hash, &r.RoutineID, &r.Name, &r.PushedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashRoutine computes the SHA-256 of a routine's content: name, memo,
// items and profile. Identical generator output hashes identically.
func HashRoutine(in models.RoutineInput) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
