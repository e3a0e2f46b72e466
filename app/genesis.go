package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/x/admin"
	"github.com/iov-one/lockup/x/cash"
	"github.com/iov-one/lockup/x/vesting"
)

// Genesis file format
type Genesis struct {
	ChainID    string         `json:"chain_id"`
	AppOptions lockup.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...lockup.Initializer) lockup.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []lockup.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts lockup.Options, kv lockup.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// Initializers returns the genesis loaders of every extension the service
// is built of.
func Initializers() lockup.Initializer {
	return ChainInitializers(
		admin.Initializer{},
		cash.Initializer{},
		vesting.Initializer{},
	)
}
