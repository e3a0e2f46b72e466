package leveldb

import (
	"testing"

	"github.com/iov-one/lockup/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWrapWritesAtomically(t *testing.T) {
	db, err := OpenInMemory(16)
	require.NoError(t, err)
	defer db.Close()

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))

	// nothing reaches the database before Write
	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)

	// a written cache is staged until the commit
	require.NoError(t, cache.Write())
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = db.Commit()
	require.NoError(t, err)
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	discarded := db.CacheWrap()
	require.NoError(t, discarded.Set([]byte("c"), []byte("3")))
	require.NoError(t, discarded.Delete([]byte("a")))
	discarded.Discard()
	_, err = db.Commit()
	require.NoError(t, err)

	ok, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUncommittedWritesAreLostOnCrash(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir, 0)
	require.NoError(t, err)

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Write())
	committed, err := db.Commit()
	require.NoError(t, err)

	// flushed but never committed
	cache = db.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("2")))
	require.NoError(t, cache.Set([]byte("b"), []byte("3")))
	require.NoError(t, cache.Write())
	require.NoError(t, db.Close())

	db, err = Open(dir, 0)
	require.NoError(t, err)
	defer db.Close()

	id, err := db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, committed, id)

	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	ok, err := db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteInvalidatesReadCache(t *testing.T) {
	db, err := OpenInMemory(16)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set([]byte("k"), []byte("v")))
	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, db.Delete([]byte("k")))
	got, err = db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIterators(t *testing.T) {
	db, err := OpenInMemory(0)
	require.NoError(t, err)
	defer db.Close()

	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, db.Set([]byte(k), []byte("v"+k)))
	}
	_, err = db.Commit()
	require.NoError(t, err)

	cases := map[string]struct {
		start, end []byte
		want       []string
	}{
		"everything ascending": {
			want: []string{"a", "b", "c", "d"},
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("d"),
			want:  []string{"b", "c"},
		},
		"open start": {
			end:  []byte("c"),
			want: []string{"a", "b"},
		},
		"open end": {
			start: []byte("c"),
			want:  []string{"c", "d"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := db.Iterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Release()

			var keys []string
			for {
				k, v, err := it.Next()
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				require.NoError(t, err)
				assert.Equal(t, "v"+string(k), string(v))
				keys = append(keys, string(k))
			}
			assert.Equal(t, tc.want, keys)
		})
	}
}

func TestCommitSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir, 0)
	require.NoError(t, err)

	id, err := db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	require.NoError(t, db.Set([]byte("key"), []byte("value")))
	first, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)

	require.NoError(t, db.Set([]byte("key"), []byte("other")))
	second, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)
	require.NoError(t, db.Close())

	db, err = Open(dir, 0)
	require.NoError(t, err)
	defer db.Close()

	id, err = db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second, id)

	got, err := db.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), got)
}
