/*
Package orm is a thin object layer over a lockup.KVStore.

A ModelBucket stores models of a single type under a common key prefix,
serialized with msgpack. A Sequence is a persistent counter that hands out
ordered keys, useful for keeping insertion order.
*/
package orm
