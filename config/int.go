package config

import (
	"fmt"
	"strconv"

	"github.com/vc64/core/errors"
)

// Int is a persisted integer preference. Set accepts an int directly or
// a base-10 string; a float64 (or any other type) is rejected.
type Int struct {
	value int
}

func (i *Int) Set(v Value) error {
	switch t := v.(type) {
	case int:
		i.value = t
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return errors.Errorf(errors.ConfigError, fmt.Sprintf("not an int: %q", t))
		}
		i.value = n
	default:
		return errors.Errorf(errors.ConfigError, fmt.Sprintf("not an int: %v", v))
	}
	return nil
}

func (i *Int) Get() int { return i.value }

func (i *Int) String() string { return strconv.Itoa(i.value) }
