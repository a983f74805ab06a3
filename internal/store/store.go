package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/syllabus/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSnapshot = []byte("snapshot")
	bucketNotices  = []byte("notices")
)

// Keys of the persisted entries
const (
	keyEnrolled = "enrolledCourses"
	keyWishlist = "wishlistCourses"
	keyNotices  = "pendingNotifications"
)

// SnapshotStore implements domain.SnapshotStore and domain.NoticeStore using BoltDB.
type SnapshotStore struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // Protects memory cache
	closed bool

	// Raw JSON per bucket:key; the only storage in memory-only mode
	cache map[string][]byte
}

// Open opens (or creates) the database at path. An empty path gives a
// memory-only store with no persistence.
func Open(path string, logger *slog.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &SnapshotStore{logger: logger, cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSnapshot, bucketNotices} {
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

	return &SnapshotStore{db: db, logger: logger, cache: make(map[string][]byte)}, nil
}

func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

// raw returns the stored bytes for key, or nil when absent.
func (s *SnapshotStore) raw(bucket []byte, key string) []byte {
	s.mu.RLock()
	if data, ok := s.cache[cacheKey(bucket, key)]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
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

	if data != nil {
		s.mu.Lock()
		s.cache[cacheKey(bucket, key)] = data
		s.mu.Unlock()
	}
	return data
}

// putAll writes every entry in one transaction. Nothing is written, on disk
// or in the cache, unless the whole transaction succeeds.
func (s *SnapshotStore) putAll(bucket []byte, entries map[string][]byte) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return domain.ErrStoreClosed
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return fmt.Errorf("bucket %q missing", bucket)
			}
			for key, data := range entries {
				if err := b.Put([]byte(key), data); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	for key, data := range entries {
		s.cache[cacheKey(bucket, key)] = data
	}
	s.mu.Unlock()
	return nil
}

// decodeList unmarshals a JSON array entry. Absent data yields an empty
// list; corrupt data is logged and also yields an empty list.
func decodeList[T any](s *SnapshotStore, bucket []byte, key string) []T {
	data := s.raw(bucket, key)
	if data == nil {
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("failed to parse stored entry, using empty list", "key", key, "error", err)
		return nil
	}
	return items
}

// === Snapshot ===

// Load restores both collections. Each entry is recovered independently.
func (s *SnapshotStore) Load() domain.Snapshot {
	snap := domain.Snapshot{
		Enrolled: decodeList[domain.EnrolledCourse](s, bucketSnapshot, keyEnrolled),
		Wishlist: decodeList[domain.WishlistCourse](s, bucketSnapshot, keyWishlist),
	}
	s.logger.Debug("loaded snapshot", "enrolled", len(snap.Enrolled), "wishlist", len(snap.Wishlist))
	return snap
}

// Commit rewrites both collections in full.
func (s *SnapshotStore) Commit(snap domain.Snapshot) error {
	enrolled, err := marshalList(snap.Enrolled)
	if err != nil {
		return fmt.Errorf("encode enrolled courses: %w", err)
	}
	wishlist, err := marshalList(snap.Wishlist)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}

	if err := s.putAll(bucketSnapshot, map[string][]byte{
		keyEnrolled: enrolled,
		keyWishlist: wishlist,
	}); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// === Notices ===

// Notices returns the persisted lesson-completed notices.
func (s *SnapshotStore) Notices() []domain.Notice {
	return decodeList[domain.Notice](s, bucketNotices, keyNotices)
}

// SaveNotices replaces the persisted notices.
func (s *SnapshotStore) SaveNotices(notices []domain.Notice) error {
	data, err := marshalList(notices)
	if err != nil {
		return fmt.Errorf("encode notices: %w", err)
	}
	return s.putAll(bucketNotices, map[string][]byte{keyNotices: data})
}

// marshalList encodes nil slices as [] so readers always see an array.
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
