package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,12}$`).MatchString

// ModelBucket is implemented by buckets that store a single model type.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db lockup.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists and ErrNotFound
	// otherwise.
	Has(db lockup.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db lockup.KVStore, key []byte, m Model) error

	// Each walks all stored entities in ascending key order. Every entity
	// is loaded into dest before fn is called with its primary key. An
	// error returned by fn stops the walk and is returned as is.
	Each(db lockup.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error
}

// NewModelBucket returns a ModelBucket that stores instances of the example
// model type under the "<name>:" prefix.
func NewModelBucket(name string, example Model) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	t := reflect.TypeOf(example)
	if t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  t,
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(mb.prefix)+len(key)), mb.prefix...), key...)
}

func (mb *modelBucket) One(db lockup.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return Unmarshal(raw, dest)
}

func (mb *modelBucket) Has(db lockup.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db lockup.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Each(db lockup.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	start, end := PrefixRange(mb.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return err
	}
	defer it.Release()

	for {
		key, raw, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return err
		}
		if err := Unmarshal(raw, dest); err != nil {
			return errors.Wrapf(err, "key %X", key)
		}
		if err := fn(key[len(mb.prefix):]); err != nil {
			return err
		}
	}
}

// PrefixRange turns a prefix into (start, end) to create an Iterator over
// every key that starts with it.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	// prefix was all 0xff, iterate to the end of the store
	return start, nil
}
