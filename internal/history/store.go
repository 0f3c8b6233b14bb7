package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store is the request log kept in a SQLite database
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open opens or creates the history database at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		request TEXT NOT NULL,
		commands_json TEXT NOT NULL,
		identifier TEXT NOT NULL,
		device_ip TEXT NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_created_at ON requests(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO metadata (key, value) VALUES ('version', ?)`, schemaVersion)
	return err
}

// Record appends an entry, assigning an ID and timestamp when missing
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	commands := entry.Commands
	if commands == nil {
		commands = []string{}
	}
	commandsJSON, err := json.Marshal(commands)
	if err != nil {
		return fmt.Errorf("failed to encode commands: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO requests (id, created_at, request, commands_json, identifier, device_ip, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UnixNano(), entry.Request, string(commandsJSON),
		entry.Identifier, entry.DeviceIP, string(entry.Outcome), entry.Detail)
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request, commands_json, identifier, device_ip, outcome, detail
		FROM requests
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e            Entry
			createdAt    int64
			commandsJSON string
			outcome      string
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Request, &commandsJSON,
			&e.Identifier, &e.DeviceIP, &outcome, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(commandsJSON), &e.Commands); err != nil {
			return nil, fmt.Errorf("failed to decode commands for %s: %w", e.ID, err)
		}
		e.Timestamp = time.Unix(0, createdAt)
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
