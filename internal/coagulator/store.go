package coagulator

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Bucket is the on-disk scratch abstraction named in spec §9:
// `Bucket<K,V>` with get/insert/remove/len. Keys are strings (an
// ExternalId or IndividualId rendered to its canonical string form); values
// are small string lists (the adjacency list on the other side of the
// fill-phase graph). The backing may be an embedded key/value engine
// (bboltBucket, used in production) or a plain in-memory map (memBucket,
// used in tests) — the Coagulator algorithm only ever sees this interface.
type Bucket interface {
	Get(key string) ([]string, bool, error)
	Put(key string, values []string) error
	Delete(key string) error
	Len() (int, error)
}

// memBucket is an in-memory Bucket, used by tests and by callers who do not
// need the coagulation working set to survive a process restart.
type memBucket struct {
	data map[string][]string
}

// NewMemBucket returns an empty in-memory Bucket.
func NewMemBucket() Bucket {
	return &memBucket{data: map[string][]string{}}
}

func (b *memBucket) Get(key string) ([]string, bool, error) {
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *memBucket) Put(key string, values []string) error {
	b.data[key] = values
	return nil
}

func (b *memBucket) Delete(key string) error {
	delete(b.data, key)
	return nil
}

func (b *memBucket) Len() (int, error) {
	return len(b.data), nil
}

// bboltBucket is a Bucket backed by one bbolt bucket in a shared *bbolt.DB.
// bbolt realizes the durable, single-writer, cheap-delete semantics §9
// requires: values are JSON-encoded string slices, transactions are
// per-call (the Coagulator is already single-threaded per entity kind, per
// spec §5: "the on-disk key/value store in §4.6 is single-threaded").
type bboltBucket struct {
	db   *bbolt.DB
	name []byte
}

func (b *bboltBucket) Get(key string) ([]string, bool, error) {
	var values []string
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.name)
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &values)
	})
	if err != nil {
		return nil, false, fmt.Errorf("coagulator: get %s/%s: %w", b.name, key, err)
	}
	return values, found, nil
}

func (b *bboltBucket) Put(key string, values []string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("coagulator: marshal %s/%s: %w", b.name, key, err)
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(b.name)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("coagulator: put %s/%s: %w", b.name, key, err)
	}
	return nil
}

func (b *bboltBucket) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.name)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("coagulator: delete %s/%s: %w", b.name, key, err)
	}
	return nil
}

func (b *bboltBucket) Len() (int, error) {
	count := 0
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.name)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, _ []byte) error {
			count++
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("coagulator: len %s: %w", b.name, err)
	}
	return count, nil
}

// Store opens the bbolt file backing every Bucket used during one
// coagulation run. The caller removes any store file left by an earlier
// run before opening it (app.Coagulate does), so every run starts from
// empty buckets.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens (creating if necessary) a bbolt database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("coagulator: open store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Bucket returns the named Bucket, creating its backing bbolt bucket lazily
// on first write.
func (s *Store) Bucket(name string) Bucket {
	return &bboltBucket{db: s.db, name: []byte(name)}
}

// appendSortedDedup inserts value into a sorted, deduplicated slice,
// matching the fill phase's "sorted, deduped" adjacency-list requirement
// (spec §4.6 step 1).
func appendSortedDedup(values []string, value string) []string {
	idx := sort.SearchStrings(values, value)
	if idx < len(values) && values[idx] == value {
		return values
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values[:idx]...)
	out = append(out, value)
	out = append(out, values[idx:]...)
	return out
}
