/*
Package x contains the extensions that make up the vesting service.

Extensions implement one concern each (token accounts, administration,
vesting) and are combined together by the app package. Shared helpers,
like the Authenticator used to learn who signed a call, live here.
*/
package x
