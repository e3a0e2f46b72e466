package app

import (
	"regexp"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining a cache wrap
// for delivered operations, and returning useful state info.
type CommitStore struct {
	committed lockup.CommitKVStore
	deliver   lockup.KVCacheWrap
}

// NewCommitStore sets up the deliver cache on top of given store.
func NewCommitStore(store lockup.CommitKVStore) *CommitStore {
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}
}

// CommitInfo returns the current version and hash
func (cs *CommitStore) CommitInfo() (lockup.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates a new deliver cache.
//
// Callers must serialize calls to Commit with all writes to DeliverStore.
func (cs *CommitStore) Commit() (lockup.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return lockup.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, errors.Wrap(err, "commit")
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// Discard drops everything written to the deliver cache since the last
// commit.
func (cs *CommitStore) Discard() {
	cs.deliver.Discard()
	cs.deliver = cs.committed.CacheWrap()
}

// DeliverStore returns a store implementation that must be used for all
// state changes.
func (cs *CommitStore) DeliverStore() lockup.CacheableKVStore {
	return cs.deliver
}

// CommittedStore returns a read only view of the last committed state.
func (cs *CommitStore) CommittedStore() lockup.ReadOnlyKVStore {
	return cs.committed
}

// Close releases the underlying store.
func (cs *CommitStore) Close() error {
	return cs.committed.Close()
}

//------- storing chainID ---------

// _lk: is a prefix for lockup internal data
const chainIDKey = "_lk:chainID"

// IsValidChainID is the RegExp to ensure valid chain IDs
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// loadChainID returns the chain id stored if any
func loadChainID(kv lockup.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv lockup.KVStore, chainID string) error {
	if !IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
