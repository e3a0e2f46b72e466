/*
Package notify delivers events of committed operations to the outside
world.

A sink receives all events produced by a single operation at once, in the
order they were emitted. Sinks are called only after the state change was
persisted, so a failing sink never rolls anything back.
*/
package notify
