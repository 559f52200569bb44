package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Bucket names
var (
	bucketMyList  = []byte("mylist")
	bucketHistory = []byte("history")
)

const (
	historyKey = "queries"

	// MaxHistory bounds the number of remembered search queries
	MaxHistory = 20
)

// savedItem wraps an Item with the time it was added
type savedItem struct {
	Item    domain.Item `json:"item"`
	AddedAt int64       `json:"added_at"` // UnixNano
}

// Store implements domain.MyListStore and domain.HistoryStore using BoltDB
type Store struct {
	db  *bolt.DB
	now func() time.Time

	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every value, keyed "bucket:key". In memory-only
	// mode it is the only copy.
	cache map[string][]byte
}

// Open opens the database at path. An empty path gives a memory-only store.
func Open(path string) (*Store, error) {
	s := &Store{cache: make(map[string][]byte), now: time.Now}
	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMyList, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	ck := cacheKey(bucket, key)

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[ck]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[ck] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[cacheKey(bucket, key)] = data
	s.mu.Unlock()
	return nil
}

func (s *Store) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, cacheKey(bucket, key))
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// values returns every raw value in a bucket
func (s *Store) values(bucket []byte) ([][]byte, error) {
	if s.db == nil {
		prefix := string(bucket) + ":"
		s.mu.RLock()
		defer s.mu.RUnlock()
		var out [][]byte
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				out = append(out, v)
			}
		}
		return out, nil
	}

	var out [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(_, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out = append(out, data)
			return nil
		})
	})
	return out, err
}

// === My List ===

// SaveItem stores or replaces an item. Re-saving keeps the original add time.
func (s *Store) SaveItem(item domain.Item) error {
	saved := savedItem{Item: item, AddedAt: s.now().UnixNano()}

	var existing savedItem
	if s.get(bucketMyList, item.Key(), &existing) {
		saved.AddedAt = existing.AddedAt
	}
	return s.set(bucketMyList, item.Key(), saved)
}

// DeleteItem removes an item by key
func (s *Store) DeleteItem(key string) error {
	return s.delete(bucketMyList, key)
}

// HasItem reports whether the key is saved
func (s *Store) HasItem(key string) bool {
	var saved savedItem
	return s.get(bucketMyList, key, &saved)
}

// ListItems returns saved items, most recently added first
func (s *Store) ListItems() ([]domain.Item, error) {
	raw, err := s.values(bucketMyList)
	if err != nil {
		return nil, err
	}

	saved := make([]savedItem, 0, len(raw))
	for _, data := range raw {
		var si savedItem
		if err := json.Unmarshal(data, &si); err != nil {
			continue // Skip corrupt entries
		}
		saved = append(saved, si)
	}

	sort.SliceStable(saved, func(i, j int) bool {
		if saved[i].AddedAt != saved[j].AddedAt {
			return saved[i].AddedAt > saved[j].AddedAt
		}
		return saved[i].Item.Key() < saved[j].Item.Key()
	})

	items := make([]domain.Item, len(saved))
	for i, si := range saved {
		items[i] = si.Item
	}
	return items, nil
}

// === Search history ===

// AddQuery records a query at the front of the history. Duplicates
// (case-insensitive) are moved rather than repeated.
func (s *Store) AddQuery(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queries, _ := s.RecentQueries()
	updated := make([]string, 0, len(queries)+1)
	updated = append(updated, query)
	for _, q := range queries {
		if !strings.EqualFold(q, query) {
			updated = append(updated, q)
		}
	}
	if len(updated) > MaxHistory {
		updated = updated[:MaxHistory]
	}
	return s.set(bucketHistory, historyKey, updated)
}

// RecentQueries returns queries, most recent first
func (s *Store) RecentQueries() ([]string, error) {
	var queries []string
	s.get(bucketHistory, historyKey, &queries)
	return queries, nil
}

// ClearHistory forgets every recorded query
func (s *Store) ClearHistory() error {
	return s.delete(bucketHistory, historyKey)
}
