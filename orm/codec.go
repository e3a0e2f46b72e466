package orm

import (
	"github.com/iov-one/lockup/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	Validate() error
}

// Marshal serializes a model into its stored form.
func Marshal(m interface{}) ([]byte, error) {
	raw, err := msgpack.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads the stored form into the destination model.
func Unmarshal(raw []byte, dest interface{}) error {
	if err := msgpack.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
