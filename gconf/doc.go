/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package owns a single configuration singleton stored under the
"_c:<package>" key. Configurations are loaded from the genesis "conf"
section when the state is initialized and can be updated later by the
owning package.
*/
package gconf
