package sqlite

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/huddleai/huddle/pkg/models"
)

// Cache stores raw API responses keyed by canonical request key, backed by
// SQLite. Entries expire lazily on read; there is no background sweep.
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS cache_entries (
	cache_key TEXT NOT NULL PRIMARY KEY,
	payload BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL
);
`

// New opens (or creates) a Cache at the given database path with a default
// per-entry TTL.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get retrieves a cached payload. Returns false if the entry is absent or
// older than its TTL.
func (c *Cache) Get(key string) ([]byte, bool) {
	var payload []byte
	var createdAt time.Time
	var ttlSeconds int64

	err := c.db.QueryRow(
		`SELECT payload, created_at, ttl_seconds FROM cache_entries WHERE cache_key = ?`,
		key,
	).Scan(&payload, &createdAt, &ttlSeconds)

	if err != nil {
		c.misses.Add(1)
		return nil, false
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if time.Since(createdAt) > ttl {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return payload, true
}

// Put stores a payload under key with the cache's default TTL, overwriting
// any existing entry.
func (c *Cache) Put(key string, payload []byte) error {
	return c.PutTTL(key, payload, c.ttl)
}

// PutTTL stores a payload with an explicit TTL. The player catalog uses a
// longer TTL than regular responses.
func (c *Cache) PutTTL(key string, payload []byte, ttl time.Duration) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO cache_entries (cache_key, payload, created_at, ttl_seconds)
		 VALUES (?, ?, ?, ?)`,
		key, payload, time.Now().UTC(), int64(ttl.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	var count, size int64
	err := c.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(payload)), 0) FROM cache_entries`,
	).Scan(&count, &size)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries:   count,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		SizeBytes: size,
	}, nil
}

// SizeBytes returns the total payload size stored in the cache.
func (c *Cache) SizeBytes() (int64, error) {
	var size int64
	err := c.db.QueryRow(`SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM cache_entries`).Scan(&size)
	if err != nil {
		return 0, fmt.Errorf("cache size: %w", err)
	}
	return size, nil
}

// Clear removes cache entries. If expiredOnly is true, only expired entries
// are removed.
func (c *Cache) Clear(expiredOnly bool) error {
	var query string
	if expiredOnly {
		query = `DELETE FROM cache_entries WHERE (julianday('now') - julianday(created_at)) * 86400 > ttl_seconds`
	} else {
		query = `DELETE FROM cache_entries`
	}
	_, err := c.db.Exec(query)
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
