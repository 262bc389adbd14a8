package config

import "fmt"

// Generic adapts an arbitrary value — one that doesn't fit Bool/String/
// Int/Float — into a Pref via caller-supplied set/get callbacks. Used for
// compound preferences like a window geometry or a list of recently used
// disk images.
type Generic struct {
	setFunc func(Value) error
	getFunc func() Value
}

// NewGeneric returns a Generic backed by setFunc/getFunc.
func NewGeneric(setFunc func(Value) error, getFunc func() Value) *Generic {
	return &Generic{setFunc: setFunc, getFunc: getFunc}
}

func (g *Generic) Set(v Value) error { return g.setFunc(v) }

func (g *Generic) String() string { return fmt.Sprint(g.getFunc()) }
