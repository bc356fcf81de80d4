/*
Package types contains custom types shared across this module, primarily
better JSON and configuration support for durations.  Bare numbers are
interpreted as fractional seconds, matching the timeout convention used by
the portal package.
*/
package types
