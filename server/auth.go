package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/x"
)

// SignerHeader carries the address of the caller. The server trusts it,
// so it must only be reachable through a gateway that authenticates the
// caller and sets the header.
const SignerHeader = "X-Lockup-Signer"

type contextKey int

const contextKeySigner contextKey = iota

// HeaderAuth is an authenticator that reads the signer stored in the
// context by the signer middleware.
type HeaderAuth struct{}

var _ x.Authenticator = HeaderAuth{}

// WithSigner returns a context carrying signer as the caller of the
// request.
func WithSigner(ctx lockup.Context, signer lockup.Address) lockup.Context {
	return context.WithValue(ctx, contextKeySigner, signer)
}

func (HeaderAuth) GetSigners(ctx lockup.Context) []lockup.Address {
	signer, ok := ctx.Value(contextKeySigner).(lockup.Address)
	if !ok || signer == nil {
		return nil
	}
	return []lockup.Address{signer}
}

func (a HeaderAuth) HasAddress(ctx lockup.Context, addr lockup.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// signerMiddleware moves the signer from the request header into the user
// context of the request.
func signerMiddleware(c *fiber.Ctx) error {
	raw := c.Get(SignerHeader)
	if raw == "" {
		return c.Next()
	}
	signer, err := lockup.ParseAddress(raw)
	if err != nil {
		return errors.Wrap(err, SignerHeader)
	}
	c.SetUserContext(WithSigner(c.UserContext(), signer))
	return c.Next()
}
