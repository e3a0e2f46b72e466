package x

import (
	"github.com/iov-one/lockup"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// extensions, so we can plug in another authentication system
// rather than hard-coding one for all extensions.
type Authenticator interface {
	// GetSigners reveals all addresses that authorized the call.
	GetSigners(lockup.Context) []lockup.Address
	// HasAddress checks if any signer matches this address
	HasAddress(lockup.Context, lockup.Address) bool
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx lockup.Context, auth Authenticator) lockup.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
