/*
Package utils holds decorators that wrap every state changing operation:
a savepoint to make it atomic, panic recovery and logging.
*/
package utils
