package store

import "github.com/iov-one/lockup"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = lockup.ReadOnlyKVStore
type SetDeleter = lockup.SetDeleter
type KVStore = lockup.KVStore
type Batch = lockup.Batch
type Iterator = lockup.Iterator
type CacheableKVStore = lockup.CacheableKVStore
type KVCacheWrap = lockup.KVCacheWrap
type CommitKVStore = lockup.CommitKVStore
type CommitID = lockup.CommitID
