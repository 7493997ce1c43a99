package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kmowery/tally/internal/models"
)

//go:embed schema.sql
var schema string

// tasksKey is the fixed key the whole task collection is stored under
const tasksKey = "todo-tasks"

// SQLiteBackend persists the task collection as a single JSON value in a
// key-value table
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at the default data path and
// initializes the schema
func OpenSQLite() (*SQLiteBackend, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenSQLiteAt(dbPath)
}

// OpenSQLiteAt opens a database at an explicit path
func OpenSQLiteAt(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db}, nil
}

// Close closes the underlying database
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load reads the stored collection. A missing key loads as an empty
// collection.
func (b *SQLiteBackend) Load() ([]models.Task, error) {
	var value string
	err := b.db.QueryRow("SELECT value FROM kv WHERE key = ?", tasksKey).Scan(&value)
	if err == sql.ErrNoRows {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Save writes the collection, replacing any previous value
func (b *SQLiteBackend) Save(tasks []models.Task) error {
	value, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	_, err = b.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, tasksKey, string(value))
	return err
}

// getDBPath returns the path to the database file
func getDBPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "tally")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "tally.db"), nil
}
