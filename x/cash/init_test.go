package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/store"
	"github.com/iov-one/lockup/weavetest"
	"github.com/stretchr/testify/require"
)

func TestInitState(t *testing.T) {
	addr := weavetest.NewAddress()
	bz, err := json.Marshal([]GenesisAccount{{Address: addr, Balance: coin.MustParseAmount("12345")}})
	require.NoError(t, err)

	hexAddr := `[{"address": "hex:0102030405060708090021222324252627282930", "balance": 50}]`
	addr2 := lockup.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29, 0x30}

	cases := map[string]struct {
		opts    lockup.Options
		isError bool
		acct    lockup.Address
		balance string
	}{
		"no data":          {opts: lockup.Options{}},
		"unrelated data":   {opts: lockup.Options{"foo": []byte(`"bar"`)}},
		"missing address":  {opts: lockup.Options{"cash": []byte(`[{"balance": "123"}]`)}, isError: true},
		"negative balance": {opts: lockup.Options{"cash": []byte(`[{"address": "hex:0102030405060708090021222324252627282930", "balance": "-1"}]`)}, isError: true},
		"bech32 account":   {opts: lockup.Options{"cash": bz}, acct: addr, balance: "12345"},
		"hex account":      {opts: lockup.Options{"cash": []byte(hexAddr)}, acct: addr2, balance: "50"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, kv)
			if tc.isError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.acct == nil {
				return
			}
			got, err := NewController(NewBucket()).BalanceOf(kv, tc.acct)
			require.NoError(t, err)
			require.Equal(t, tc.balance, got.String())
		})
	}
}
