package admin

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/gconf"
)

const pkgName = "admin"

// Configuration is the administration state of the pool.
type Configuration struct {
	Admin  lockup.Address `json:"admin" msgpack:"admin"`
	Paused bool           `json:"paused" msgpack:"paused"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkgName, &conf); err != nil {
		return nil, errors.Wrap(err, "load admin configuration")
	}
	return &conf, nil
}

// Initializer stores the administration state found in the genesis
// "conf" section.
type Initializer struct{}

var _ lockup.Initializer = Initializer{}

func (Initializer) FromGenesis(opts lockup.Options, db lockup.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, pkgName, &conf)
}
