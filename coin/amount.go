/*
Package coin implements the token amount used across lockup.

Amounts are arbitrary precision non negative integers counted in the
smallest unit of the token. The zero value is a valid zero amount. Every
operation returns a new value; an Amount is never modified in place.
*/
package coin

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/iov-one/lockup/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Amount is a non negative quantity of tokens.
type Amount struct {
	i *big.Int
}

// Zero is the zero amount.
var Zero = Amount{}

// NewAmount returns an amount of n units. It panics when n is negative.
func NewAmount(n int64) Amount {
	if n < 0 {
		panic("negative amount")
	}
	return Amount{i: big.NewInt(n)}
}

// ParseAmount reads a base 10 integer.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero, errors.Wrapf(errors.ErrAmount, "invalid amount %q", s)
	}
	if i.Sign() < 0 {
		return Zero, errors.Wrapf(errors.ErrAmount, "negative amount %q", s)
	}
	return Amount{i: i}, nil
}

// MustParseAmount is ParseAmount that panics on error. Use with constants.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) int() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// BigInt returns a copy of the underlying integer.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.int())
}

// Add returns a + o.
func (a Amount) Add(o Amount) Amount {
	return Amount{i: new(big.Int).Add(a.int(), o.int())}
}

// Sub returns a - o, or ErrAmount when the result would be negative.
func (a Amount) Sub(o Amount) (Amount, error) {
	if a.Cmp(o) < 0 {
		return Zero, errors.Wrapf(errors.ErrAmount, "cannot subtract %s from %s", o, a)
	}
	return Amount{i: new(big.Int).Sub(a.int(), o.int())}, nil
}

// MulDiv returns floor(a * mul / div). It panics when div is not positive
// or mul is negative.
func (a Amount) MulDiv(mul, div int64) Amount {
	if div <= 0 || mul < 0 {
		panic("invalid ratio")
	}
	r := new(big.Int).Mul(a.int(), big.NewInt(mul))
	return Amount{i: r.Quo(r, big.NewInt(div))}
}

// Cmp returns -1, 0 or 1 when a is less than, equal to or greater than o.
func (a Amount) Cmp(o Amount) int {
	return a.int().Cmp(o.int())
}

// Equals returns true when both amounts are the same.
func (a Amount) Equals(o Amount) bool {
	return a.Cmp(o) == 0
}

// IsZero returns true for the zero amount.
func (a Amount) IsZero() bool {
	return a.int().Sign() == 0
}

// IsPositive returns true for any non zero amount.
func (a Amount) IsPositive() bool {
	return a.int().Sign() > 0
}

func (a Amount) String() string {
	return a.int().String()
}

// MarshalJSON encodes the amount as a decimal string so that no JSON
// consumer rounds it to a float.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrAmount, "amount must be a string or an integer")
		}
		s = n.String()
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

var (
	_ msgpack.CustomEncoder = Amount{}
	_ msgpack.CustomDecoder = (*Amount)(nil)
)

// EncodeMsgpack stores the amount as its decimal string.
func (a Amount) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(a.String())
}

// DecodeMsgpack reads an amount written by EncodeMsgpack.
func (a *Amount) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "amount: %s", err)
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
