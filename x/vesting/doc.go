/*
Package vesting implements a pool of tokens released to beneficiaries over
time.

The administrator funds the pool wallet and creates schedules against it.
Each schedule locks an amount for a beneficiary and unlocks it linearly
between the start and the end of the vesting period, in steps of the slice
period, starting at the cliff. Unlocked tokens can be released to the
beneficiary at any time. A revocable schedule can be terminated by the
administrator: the part that vested so far is paid out and the rest returns
to the pool.

The amount locked by all live schedules never exceeds the pool balance.
Only the surplus can be used for new schedules or withdrawn by the
administrator.
*/
package vesting
