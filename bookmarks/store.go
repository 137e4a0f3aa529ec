// Package bookmarks persists last reading position of books.
package bookmarks

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var ErrNotFound = errors.New("bookmark not found")

const schema = `CREATE TABLE IF NOT EXISTS bookmarks (
	book        TEXT PRIMARY KEY,
	cfi         TEXT NOT NULL,
	spine_index INTEGER NOT NULL,
	updated     INTEGER NOT NULL
)`

// Bookmark is reading position of a book.
type Bookmark struct {
	Book       string
	CFI        string
	SpineIndex int
	Updated    time.Time
}

// Store keeps bookmarks in sqlite database. It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	conn *sqlite.Conn
	log  *zap.Logger
}

// Open opens (creating when necessary) database at path. Use ":memory:" for
// a throwaway store.
func Open(path string, log *zap.Logger) (*Store, error) {
	flags := sqlite.OpenReadWrite | sqlite.OpenCreate
	if path == ":memory:" {
		flags |= sqlite.OpenMemory
	} else {
		flags |= sqlite.OpenWAL
	}
	conn, err := sqlite.OpenConn(path, flags)
	if err != nil {
		return nil, fmt.Errorf("unable to open bookmarks database %s: %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare bookmarks database %s: %w", path, err)
	}
	return &Store{conn: conn, log: log.Named("bookmarks")}, nil
}

// Save stores bookmark replacing previous one for the same book. Zero
// Updated is set to current time.
func (s *Store) Save(b Bookmark) error {
	if b.Updated.IsZero() {
		b.Updated = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := sqlitex.Execute(s.conn, `INSERT INTO bookmarks (book, cfi, spine_index, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(book) DO UPDATE SET cfi = excluded.cfi, spine_index = excluded.spine_index, updated = excluded.updated`,
		&sqlitex.ExecOptions{Args: []any{b.Book, b.CFI, b.SpineIndex, b.Updated.UnixMilli()}})
	if err != nil {
		return fmt.Errorf("unable to save bookmark for %s: %w", b.Book, err)
	}
	s.log.Debug("Bookmark saved", zap.String("book", b.Book), zap.String("cfi", b.CFI))
	return nil
}

// Load returns bookmark of the book or ErrNotFound.
func (s *Store) Load(book string) (Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		b     Bookmark
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT cfi, spine_index, updated FROM bookmarks WHERE book = ?`,
		&sqlitex.ExecOptions{
			Args: []any{book},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				b = Bookmark{
					Book:       book,
					CFI:        stmt.ColumnText(0),
					SpineIndex: stmt.ColumnInt(1),
					Updated:    time.UnixMilli(stmt.ColumnInt64(2)),
				}
				return nil
			},
		})
	if err != nil {
		return Bookmark{}, fmt.Errorf("unable to load bookmark for %s: %w", book, err)
	}
	if !found {
		return Bookmark{}, fmt.Errorf("%s: %w", book, ErrNotFound)
	}
	return b, nil
}

// Delete forgets bookmark of the book.
func (s *Store) Delete(book string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := sqlitex.Execute(s.conn, `DELETE FROM bookmarks WHERE book = ?`, &sqlitex.ExecOptions{Args: []any{book}}); err != nil {
		return fmt.Errorf("unable to delete bookmark for %s: %w", book, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("unable to close bookmarks database: %w", err)
	}
	return nil
}
