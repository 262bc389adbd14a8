// Package config implements a small on-disk preferences system — typed
// values that know how to parse a Set() argument and render themselves
// back out as "key :: value" lines — grounded on the teacher's prefs
// package (only its _test.go files survive in the retrieval pack, but
// they pin down the exact API: prefs.Bool/String/Float/Int/Generic,
// prefs.Disk.Add/Save/Load, and the "key :: value" line format). Used by
// cmd/c64core to persist ROM paths, video standard, warp speed, and
// drive attachment across runs.
package config

import "fmt"

// Value is whatever a Pref's Set method accepts and Get returns: a bool,
// string, float64, int, or anything a Generic's callbacks choose to
// marshal through.
type Value interface{}

// Pref is one named, persistable preference value.
type Pref interface {
	Set(v Value) error
	fmt.Stringer
}
