package database

import (
	"database/sql"
	"fmt"
	"time"

	"moodtunes/pkg/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Database wraps a *sql.DB providing higher-level helper methods for the
// application's persistent store (users and playlist entries). It is safe for
// concurrent use because the underlying *sql.DB is concurrency-safe.
type Database struct {
	conn   *sql.DB
	logger *logrus.Logger

	// Prepared statements for the hot paths
	insertUserStmt    *sql.Stmt
	getUserStmt       *sql.Stmt
	insertEntryStmt   *sql.Stmt
	entriesByUserStmt *sql.Stmt
	removeEntryStmt   *sql.Stmt
}

// NewDatabase opens (or creates) a SQLite database at the provided path and
// ensures all required tables and indices exist. It also applies lightweight
// performance-oriented pragmas (WAL, cache sizing). Caller should Close() it
// when finished.
func NewDatabase(dbPath string) (*Database, error) {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	conn, err := sql.Open("sqlite3", dbPath+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool - adjusted for SQLite
	conn.SetMaxOpenConns(5) // SQLite works better with fewer connections
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(15 * time.Minute)

	// Enable WAL mode for better concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA temp_store=memory;",
		"PRAGMA foreign_keys=ON;",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			logger.WithError(err).WithField("pragma", pragma).Warn("Failed to set pragma")
		}
	}

	db := &Database{
		conn:   conn,
		logger: logger,
	}

	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := db.prepareStatements(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	logger.WithField("db_path", dbPath).Info("Database initialized successfully")
	return db, nil
}

// createTables creates tables and indices if they do not already exist.
// This is idempotent and safe to call multiple times.
func (db *Database) createTables() error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	// Playlist entries are denormalized on purpose: songs are derived from the
	// filesystem and have no table of their own, so each entry carries the
	// song name, URL and mood it was saved with. No uniqueness across
	// (user_id, song_url); saving the same song twice creates two entries.
	playlistsTable := `
	CREATE TABLE IF NOT EXISTS playlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		song_name TEXT NOT NULL,
		song_url TEXT NOT NULL,
		mood TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	indices := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);",
		"CREATE INDEX IF NOT EXISTS idx_playlists_user ON playlists(user_id);",
	}

	tables := []string{usersTable, playlistsTable}
	for _, table := range tables {
		if _, err := db.conn.Exec(table); err != nil {
			return err
		}
	}

	for _, index := range indices {
		if _, err := db.conn.Exec(index); err != nil {
			return err
		}
	}

	return nil
}

// prepareStatements prepares commonly used SQL statements for better performance
func (db *Database) prepareStatements() error {
	var err error

	db.insertUserStmt, err = db.conn.Prepare(`
		INSERT INTO users (username, password) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert user statement: %w", err)
	}

	db.getUserStmt, err = db.conn.Prepare(`
		SELECT id, username, password FROM users WHERE username = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare get user statement: %w", err)
	}

	db.insertEntryStmt, err = db.conn.Prepare(`
		INSERT INTO playlists (user_id, song_name, song_url, mood)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert playlist entry statement: %w", err)
	}

	db.entriesByUserStmt, err = db.conn.Prepare(`
		SELECT id, user_id, song_name, song_url, mood
		FROM playlists WHERE user_id = ?
		ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to prepare playlist entries statement: %w", err)
	}

	db.removeEntryStmt, err = db.conn.Prepare(`
		DELETE FROM playlists WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare remove playlist entry statement: %w", err)
	}

	return nil
}

// CreateUser inserts a new user and returns it with the generated ID.
func (db *Database) CreateUser(username, password string) (models.User, error) {
	result, err := db.insertUserStmt.Exec(username, password)
	if err != nil {
		db.logger.WithError(err).WithField("username", username).Error("Failed to insert user")
		return models.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		db.logger.WithError(err).Error("Failed to get last insert ID")
		return models.User{}, err
	}

	return models.User{ID: int(id), Username: username, Password: password}, nil
}

// GetUserByUsername returns the user with the given username, or (nil, nil)
// when no such user exists.
func (db *Database) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := db.getUserStmt.QueryRow(username).Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		db.logger.WithError(err).WithField("username", username).Error("Failed to get user by username")
		return nil, err
	}
	return &user, nil
}

// AddPlaylistEntry inserts a new playlist entry and returns its ID.
func (db *Database) AddPlaylistEntry(entry models.PlaylistEntry) (int, error) {
	result, err := db.insertEntryStmt.Exec(entry.UserID, entry.SongName, entry.SongURL, entry.Mood)
	if err != nil {
		db.logger.WithError(err).WithField("user_id", entry.UserID).Error("Failed to insert playlist entry")
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		db.logger.WithError(err).Error("Failed to get last insert ID")
		return 0, err
	}

	return int(id), nil
}

// GetPlaylistEntries returns all entries saved by the given user in insertion order.
func (db *Database) GetPlaylistEntries(userID int) ([]models.PlaylistEntry, error) {
	rows, err := db.entriesByUserStmt.Query(userID)
	if err != nil {
		db.logger.WithError(err).WithField("user_id", userID).Error("Failed to query playlist entries")
		return nil, err
	}
	defer rows.Close()

	var entries []models.PlaylistEntry
	for rows.Next() {
		var entry models.PlaylistEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.SongName, &entry.SongURL, &entry.Mood); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RemovePlaylistEntry deletes the entry with the given ID. Deleting an ID
// that does not exist is not an error.
func (db *Database) RemovePlaylistEntry(id int) error {
	_, err := db.removeEntryStmt.Exec(id)
	if err != nil {
		db.logger.WithError(err).WithField("entry_id", id).Error("Failed to remove playlist entry")
	}
	return err
}

// Ping verifies the database connection is alive.
func (db *Database) Ping() error {
	return db.conn.Ping()
}

// Close closes the underlying database connection and prepared statements.
func (db *Database) Close() error {
	statements := []*sql.Stmt{
		db.insertUserStmt,
		db.getUserStmt,
		db.insertEntryStmt,
		db.entriesByUserStmt,
		db.removeEntryStmt,
	}

	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				db.logger.WithError(err).Error("Failed to close prepared statement")
			}
		}
	}

	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
