package weavetest

import (
	"testing"

	"github.com/iov-one/lockup"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// lockup.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) lockup.Address {
	t.Helper()

	addr, err := lockup.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
