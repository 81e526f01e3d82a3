package transcribe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cours-de-latin/escansion"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS transcriptions (
	word       TEXT    NOT NULL,
	exceptions INTEGER NOT NULL,
	marker     TEXT    NOT NULL,
	syllables  TEXT    NOT NULL,
	PRIMARY KEY (word, exceptions, marker)
)`

// Cache stores the transcriptions of next in a SQLite database so that a
// slow transcriber is asked about each word once.
type Cache struct {
	db   *sql.DB
	next escansion.Transcriber
}

// OpenCache opens (creating if needed) the cache database at path.
// Use ":memory:" for a throwaway cache.
func OpenCache(path string, next escansion.Transcriber) (*Cache, error) {
	if next == nil {
		return nil, escansion.ErrNoTranscriber
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &Cache{db: db, next: next}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Len returns the number of cached transcriptions.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcriptions`).Scan(&n)
	return n, err
}

// Transcribe returns the cached syllables of word, asking the next
// transcriber on a miss.
func (c *Cache) Transcribe(ctx context.Context, word string, opts escansion.TranscribeOptions) ([]string, error) {
	key := strings.ToLower(word)
	var joined string
	err := c.db.QueryRowContext(ctx,
		`SELECT syllables FROM transcriptions WHERE word = ? AND exceptions = ? AND marker = ?`,
		key, opts.Exceptions, opts.StressMarker).Scan(&joined)
	switch {
	case err == nil:
		return strings.Fields(joined), nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("read cache: %w", err)
	}

	syls, err := c.next.Transcribe(ctx, word, opts)
	if err != nil {
		return nil, err
	}
	if len(syls) == 0 {
		return syls, nil
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcriptions (word, exceptions, marker, syllables) VALUES (?, ?, ?, ?)`,
		key, opts.Exceptions, opts.StressMarker, strings.Join(syls, " ")); err != nil {
		log.Warn().Err(err).Str("word", word).Msg("failed to store transcription")
	}
	return syls, nil
}
