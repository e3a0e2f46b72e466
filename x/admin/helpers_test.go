package admin

import (
	"github.com/iov-one/lockup/gconf"
)

func gconfSave(db gconf.Store, c *Configuration) error {
	return gconf.Save(db, pkgName, c)
}
