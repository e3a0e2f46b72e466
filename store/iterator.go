package store

import (
	"bytes"

	"github.com/iov-one/lockup/errors"
)

// mergeIterator combines the items cached in a btree with the iterator of
// the backing store. Cached items shadow the parent entries with the same
// key, deleted items hide them.
type mergeIterator struct {
	cached []keyer
	idx    int
	parent Iterator

	// peeked parent entry
	pkey, pvalue []byte
	pdone        bool
	peeked       bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []keyer, parent Iterator) *mergeIterator {
	return &mergeIterator{
		cached: cached,
		parent: parent,
	}
}

// Next returns the next visible key/value pair or errors.ErrIteratorDone.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}

		haveCached := m.idx < len(m.cached)
		switch {
		case !haveCached && m.pdone:
			return nil, nil, errors.ErrIteratorDone
		case !haveCached:
			m.peeked = false
			return m.pkey, m.pvalue, nil
		}

		item := m.cached[m.idx]
		if !m.pdone {
			cmp := bytes.Compare(item.Key(), m.pkey)
			if cmp > 0 {
				// parent entry comes first
				m.peeked = false
				return m.pkey, m.pvalue, nil
			}
			if cmp == 0 {
				// cached entry shadows the parent one
				m.peeked = false
			}
		}

		m.idx++
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
		// deleted item, look further
	}
}

func (m *mergeIterator) peekParent() error {
	if m.peeked || m.pdone {
		return nil
	}
	key, value, err := m.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			m.pdone = true
			return nil
		}
		return err
	}
	m.pkey, m.pvalue = key, value
	m.peeked = true
	return nil
}

// Release releases the Iterator.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.cached = nil
}
