package cash

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
type GenesisAccount struct {
	Address lockup.Address `json:"address"`
	Balance coin.Amount    `json:"balance"`
}

// Initializer fulfils the lockup.Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ lockup.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts lockup.Options, kv lockup.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(err, "cannot read genesis accounts")
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
