// Package state provides a generic finite-state holder with blocking waits.
//
// A Tracker holds the current state of a component, lets any goroutine
// overwrite it, and lets any number of goroutines wait until the state
// becomes a particular value or moves away from one. States designated as
// terminal are sticky: once entered they are never left, and every pending
// or future wait completes immediately with the terminal state.
package state
