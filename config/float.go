package config

import (
	"fmt"
	"strconv"

	"github.com/vc64/core/errors"
)

// Float is a persisted float64 preference. Unlike Int, Set does not
// accept a string — the teacher's own prefs.Float never did either,
// matching what its test suite (prefs_test.go's TestFloat) exercises.
type Float struct {
	value float64
}

func (f *Float) Set(v Value) error {
	n, ok := v.(float64)
	if !ok {
		return errors.Errorf(errors.ConfigError, fmt.Sprintf("not a float: %v", v))
	}
	f.value = n
	return nil
}

func (f *Float) Get() float64 { return f.value }

func (f *Float) String() string { return strconv.FormatFloat(f.value, 'g', -1, 64) }
