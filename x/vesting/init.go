package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/gconf"
)

// Initializer stores the pool configuration found in the genesis "conf"
// section.
type Initializer struct{}

var _ lockup.Initializer = Initializer{}

func (Initializer) FromGenesis(opts lockup.Options, db lockup.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, pkgName, &conf)
}
