package cash

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/orm"
)

// Controller moves tokens between wallets. It is the token ledger the
// vesting engine pays out from.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on given wallet bucket.
func NewController(bucket orm.ModelBucket) Controller {
	return Controller{bucket: bucket}
}

// BalanceOf returns the balance of given address. An address that never
// held any tokens has a zero balance.
func (c Controller) BalanceOf(db lockup.ReadOnlyKVStore, addr lockup.Address) (coin.Amount, error) {
	if err := addr.Validate(); err != nil {
		return coin.Zero, errors.Wrap(err, "holder")
	}
	w, err := c.wallet(db, addr)
	if err != nil {
		return coin.Zero, err
	}
	return w.Balance, nil
}

// Transfer moves the given amount from src to dest.
// If src doesn't have sufficient tokens, it fails.
func (c Controller) Transfer(db lockup.KVStore, src, dest lockup.Address, amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	left, err := sender.Balance.Sub(amount)
	if err != nil {
		return errors.Wrapf(ErrInsufficientFunds, "%s holds %s, need %s", src, sender.Balance, amount)
	}
	sender.Balance = left
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}

	// Read the recipient after the sender is written so that a transfer
	// to self is a noop.
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	recipient.Balance = recipient.Balance.Add(amount)
	return c.bucket.Put(db, dest, recipient)
}

// IssueCoins adds the given amount of tokens to the destination address.
func (c Controller) IssueCoins(db lockup.KVStore, dest lockup.Address, amount coin.Amount) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	w.Balance = w.Balance.Add(amount)
	return c.bucket.Put(db, dest, w)
}

func (c Controller) wallet(db lockup.ReadOnlyKVStore, addr lockup.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
