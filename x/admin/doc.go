/*
Package admin keeps the single administrator of the vesting pool and the
pause flag.

Both values live in one configuration singleton. Only the current
administrator may pause the pool or hand the role over to another address.
*/
package admin
