/*
Package leveldb provides the durable root store of lockup.

All state lives in a single goleveldb database. Writes of a cache wrap are
staged in memory and reach the disk together with the version record, in one
synced leveldb batch, when the store is committed. A crash therefore never
leaves an operation on disk without the commit that covers it. Recently read
values are kept in an LRU cache that is updated whenever a batch lands.
*/
package leveldb

import (
	"encoding/binary"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/store"
	"github.com/minio/sha256-simd"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// DefaultCacheSize is the number of values kept in the read cache.
const DefaultCacheSize = 10000

var (
	// versionKey holds the commit metadata. It sorts before every model key
	// and is hidden from iteration.
	versionKey = []byte("\x00_version")
	firstKey   = []byte{0x01}
)

// CommitStore is a lockup.CommitKVStore backed by goleveldb.
type CommitStore struct {
	db    *leveldb.DB
	cache *lru.Cache

	// mu guards the commit metadata
	mu      sync.Mutex
	version int64
	hash    []byte
	pending []byte
	// staged holds cache wrap writes until the next Commit
	staged    *leveldb.Batch
	stagedOps []store.Op
}

var _ lockup.CommitKVStore = (*CommitStore)(nil)

// Open opens (or creates) the database stored in dir.
func Open(dir string, cacheSize int) (*CommitStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return newCommitStore(db, cacheSize)
}

// OpenInMemory creates a database that lives in memory only. Use for tests.
func OpenInMemory(cacheSize int) (*CommitStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open memory: %s", err)
	}
	return newCommitStore(db, cacheSize)
}

func newCommitStore(db *leveldb.DB, cacheSize int) (*CommitStore, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "lru cache: %s", err)
	}
	s := &CommitStore{db: db, cache: cache, staged: new(leveldb.Batch)}
	if err := s.loadVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *CommitStore) loadVersion() error {
	raw, err := s.db.Get(versionKey, nil)
	switch {
	case err == leveldb.ErrNotFound:
		return nil
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load version: %s", err)
	case len(raw) < 8:
		return errors.Wrap(errors.ErrDatabase, "corrupted version record")
	}
	s.version = int64(binary.BigEndian.Uint64(raw[:8]))
	s.hash = append([]byte(nil), raw[8:]...)
	return nil
}

// Get returns the value stored under the key or nil.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	if v, ok := s.cache.Get(string(key)); ok {
		return v.([]byte), nil
	}
	val, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	s.cache.Add(string(key), val)
	return val, nil
}

// Has returns true if the key is stored.
func (s *CommitStore) Has(key []byte) (bool, error) {
	if s.cache.Contains(string(key)) {
		return true, nil
	}
	ok, err := s.db.Has(key, nil)
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has: %s", err)
	}
	return ok, nil
}

// Set writes a single value straight to disk.
func (s *CommitStore) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes a single value straight from disk.
func (s *CommitStore) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (lockup.Iterator, error) {
	if start == nil {
		start = firstKey
	}
	it := s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &ascending{it: it}, nil
}

// NewBatch returns a batch that is applied atomically on Write.
func (s *CommitStore) NewBatch() lockup.Batch {
	return &batch{store: s, b: new(leveldb.Batch)}
}

// CacheWrap returns a savepoint. Writing it stages its operations; they
// become visible and durable with the next Commit.
func (s *CommitStore) CacheWrap() lockup.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, &batch{store: s, b: new(leveldb.Batch), staging: true}, nil)
}

func (s *CommitStore) stage(ops []store.Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		if op.IsSet() {
			s.staged.Put(op.Key(), op.Value())
		} else {
			s.staged.Delete(op.Key())
		}
	}
	s.stagedOps = append(s.stagedOps, ops...)
}

// Commit writes the staged operations together with a new version record.
// The hash chains the digest of every batch written since the previous
// commit. A failed commit drops the staged operations.
func (s *CommitStore) Commit() (lockup.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, ops := s.staged, s.stagedOps
	s.staged, s.stagedOps = new(leveldb.Batch), nil

	h := sha256.New()
	h.Write(s.hash)
	h.Write(s.pending)
	h.Write(staged.Dump())
	hash := h.Sum(nil)
	version := s.version + 1

	raw := make([]byte, 8, 8+len(hash))
	binary.BigEndian.PutUint64(raw, uint64(version))
	raw = append(raw, hash...)
	staged.Put(versionKey, raw)
	if err := s.db.Write(staged, &opt.WriteOptions{Sync: true}); err != nil {
		return lockup.CommitID{}, errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	s.updateCache(ops)
	s.version = version
	s.hash = hash
	s.pending = nil
	return lockup.CommitID{Version: version, Hash: hash}, nil
}

func (s *CommitStore) updateCache(ops []store.Op) {
	for _, op := range ops {
		if op.IsSet() {
			s.cache.Add(string(op.Key()), op.Value())
		} else {
			s.cache.Remove(string(op.Key()))
		}
	}
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (lockup.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lockup.CommitID{Version: s.version, Hash: s.hash}, nil
}

// Close releases the database.
func (s *CommitStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "close: %s", err)
	}
	return nil
}

type batch struct {
	store   *CommitStore
	b       *leveldb.Batch
	ops     []store.Op
	staging bool
}

var _ lockup.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	b.b.Put(key, value)
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	s := b.store
	if b.staging {
		s.stage(b.ops)
		b.Reset()
		return nil
	}
	if err := s.db.Write(b.b, nil); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write batch: %s", err)
	}
	s.updateCache(b.ops)
	s.mu.Lock()
	h := sha256.New()
	h.Write(s.pending)
	h.Write(b.b.Dump())
	s.pending = h.Sum(nil)
	s.mu.Unlock()

	b.b.Reset()
	b.ops = nil
	return nil
}

// Reset drops all pending operations.
func (b *batch) Reset() {
	b.b.Reset()
	b.ops = nil
}

// ascending adapts a leveldb iterator, copying keys and values out as
// leveldb reuses its buffers.
type ascending struct {
	it      iterator.Iterator
	started bool
}

func (a *ascending) Next() ([]byte, []byte, error) {
	var ok bool
	if !a.started {
		a.started = true
		ok = a.it.First()
	} else {
		ok = a.it.Next()
	}
	return current(a.it, ok)
}

func (a *ascending) Release() {
	a.it.Release()
}

func current(it iterator.Iterator, ok bool) ([]byte, []byte, error) {
	if !ok {
		if err := it.Error(); err != nil {
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "iterator: %s", err)
		}
		return nil, nil, errors.ErrIteratorDone
	}
	key := append([]byte(nil), it.Key()...)
	value := append([]byte(nil), it.Value()...)
	return key, value, nil
}
