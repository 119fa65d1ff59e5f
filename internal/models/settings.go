package models

import (
	"fmt"

	"github.com/julianstephens/daycard/internal/constants"
)

type Settings struct {
	WindowSize     int `json:"window_size" yaml:"window_size"`
	SafetyMargin   int `json:"safety_margin" yaml:"safety_margin"`
	DeletableAfter int `json:"deletable_after" yaml:"deletable_after"`
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		WindowSize:     constants.DefaultWindowSize,
		SafetyMargin:   constants.DefaultSafetyMargin,
		DeletableAfter: constants.DefaultDeletableAfter,
	}
}

func (s Settings) Validate() error {
	if s.WindowSize < 0 {
		return fmt.Errorf("window size must not be negative")
	}
	if s.SafetyMargin < 0 {
		return fmt.Errorf("safety margin must not be negative")
	}
	if s.DeletableAfter < 0 {
		return fmt.Errorf("deletable-after must not be negative")
	}
	return nil
}
