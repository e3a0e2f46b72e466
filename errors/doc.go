/*
Package errors implements the error taxonomy used by lockup.

Every error returned by lockup code wraps one of the root errors registered in
this package or in an extension. A root error carries a unique numeric code.
Extensions register their own, more specific, errors with RegisterIn, which
places them under one of the category roots declared here:

	ErrUnauthorized  the caller lacks the required role
	ErrInput         malformed parameters
	ErrState         operation inconsistent with the current state
	ErrNotFound      unknown identifier or out of range index

A category test matches every error registered in it:

	errors.ErrState.Is(vesting.ErrPaused.New("create"))   // true
	vesting.ErrPaused.Is(vesting.ErrPaused.New("create")) // true

Create errors at the point of failure with ErrXyz.New("...") or
errors.Wrap(err, "...") so that a stacktrace is attached. Once you have an
error, use fmt to get more context:

	%s is just the error message
	%+v is the full stack trace
*/
package errors
