package config

import (
	"fmt"

	"github.com/vc64/core/errors"
)

// String is a persisted string preference, optionally capped to a
// maximum length (SetMaxLen(0) removes the cap; it does not restore
// characters already cropped by an earlier, smaller cap).
type String struct {
	value  string
	maxLen int
}

func (s *String) Set(v Value) error {
	str, ok := v.(string)
	if !ok {
		return errors.Errorf(errors.ConfigError, fmt.Sprintf("not a string: %v", v))
	}
	s.value = str
	s.crop()
	return nil
}

func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	s.crop()
}

func (s *String) crop() {
	if s.maxLen > 0 && len(s.value) > s.maxLen {
		s.value = s.value[:s.maxLen]
	}
}

func (s *String) Get() string { return s.value }

func (s *String) String() string { return s.value }
