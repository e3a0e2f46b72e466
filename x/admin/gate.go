package admin

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/gconf"
	"github.com/iov-one/lockup/x"
)

// AdminTransferred is emitted when the administrator role changes hands.
type AdminTransferred struct {
	Previous lockup.Address `json:"previous"`
	Admin    lockup.Address `json:"admin"`
}

func (AdminTransferred) EventName() string { return "admin.transferred" }

// Gate answers who administers the pool and whether the pool is paused.
type Gate struct {
	auth x.Authenticator
}

// NewGate returns a gate that learns the caller from given authenticator.
func NewGate(auth x.Authenticator) *Gate {
	return &Gate{auth: auth}
}

// Admin returns the address of the current administrator.
func (g *Gate) Admin(db lockup.ReadOnlyKVStore) (lockup.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Admin, nil
}

// IsAdministrator returns true if the administrator signed the call.
func (g *Gate) IsAdministrator(ctx lockup.Context, db lockup.ReadOnlyKVStore) (bool, error) {
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	return g.auth.HasAddress(ctx, conf.Admin), nil
}

// IsPaused returns the pause flag.
func (g *Gate) IsPaused(db lockup.ReadOnlyKVStore) (bool, error) {
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	return conf.Paused, nil
}

// SetPaused stores the pause flag. The caller is responsible for the
// authorization check.
func (g *Gate) SetPaused(db lockup.KVStore, paused bool) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	conf.Paused = paused
	return gconf.Save(db, pkgName, conf)
}

// TransferAdmin hands the administrator role over to another address. Only
// the current administrator can do that.
func (g *Gate) TransferAdmin(ctx lockup.Context, db lockup.KVStore, newAdmin lockup.Address) error {
	if err := newAdmin.Validate(); err != nil {
		return errors.Wrap(err, "new admin")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !g.auth.HasAddress(ctx, conf.Admin) {
		return errors.Wrap(errors.ErrUnauthorized, "only the administrator can transfer the role")
	}
	prev := conf.Admin
	conf.Admin = newAdmin
	if err := gconf.Save(db, pkgName, conf); err != nil {
		return err
	}
	lockup.GetLogger(ctx).Info("administrator changed", "previous", prev.String(), "admin", newAdmin.String())
	lockup.Emit(ctx, AdminTransferred{Previous: prev, Admin: newAdmin})
	return nil
}
