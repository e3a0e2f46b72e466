package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/lockup"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. This is for the convinience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer lockup.Address

	// Signers represents an authentication of multiple signers.
	Signers []lockup.Address
}

func (a *Auth) GetSigners(lockup.Context) []lockup.Address {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx lockup.Context, addr lockup.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx lockup.Context, signers ...lockup.Address) lockup.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx lockup.Context) []lockup.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]lockup.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []lockup.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx lockup.Context, addr lockup.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
