package config

import (
	"fmt"

	"github.com/vc64/core/errors"
)

// Bool is a persisted boolean preference. Set accepts a bool directly or
// a string ("true"/"1" or "false"/"0"/""); anything else is rejected.
type Bool struct {
	value bool
}

func (b *Bool) Set(v Value) error {
	switch t := v.(type) {
	case bool:
		b.value = t
	case string:
		switch t {
		case "true", "1":
			b.value = true
		case "false", "0", "":
			b.value = false
		default:
			return errors.Errorf(errors.ConfigError, fmt.Sprintf("not a bool: %q", t))
		}
	default:
		return errors.Errorf(errors.ConfigError, fmt.Sprintf("not a bool: %v", v))
	}
	return nil
}

func (b *Bool) Get() bool { return b.value }

func (b *Bool) String() string {
	if b.value {
		return "true"
	}
	return "false"
}
