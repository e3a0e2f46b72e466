package vesting

import (
	"regexp"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/gconf"
)

const pkgName = "vesting"

var isSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`).MatchString

// Configuration describes the pool. The pool presents itself as a virtual
// token with a name and a symbol but no supply of its own.
type Configuration struct {
	// Pool is the wallet holding all vesting funds.
	Pool   lockup.Address `json:"pool" msgpack:"pool"`
	Name   string         `json:"name" msgpack:"name"`
	Symbol string         `json:"symbol" msgpack:"symbol"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Pool.Validate(); err != nil {
		return errors.Wrap(err, "pool")
	}
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if !isSymbol(c.Symbol) {
		return errors.Wrapf(errors.ErrInput, "symbol %q", c.Symbol)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkgName, &conf); err != nil {
		return nil, errors.Wrap(err, "load vesting configuration")
	}
	return &conf, nil
}
