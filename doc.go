/*
Package lockup defines the interfaces and primitive types shared by every
part of the vesting engine: storage, context, addresses, time and events.

Extensions live under x/. The vesting engine itself is x/vesting; it consumes
a token ledger (x/cash), an access gate (x/admin) and a clock through the
small interfaces it declares, so each collaborator can be replaced.

Context carries per call information. There exist two functions for every
XYZ of type T that we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package lockup
