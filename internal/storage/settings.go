package storage

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/daycard/internal/constants"
	"github.com/julianstephens/daycard/internal/models"
)

// SettingPair is one row of the settings key/value table.
type SettingPair struct {
	Key   string
	Value string
}

// SettingsToPairs flattens settings into key/value rows.
func SettingsToPairs(s models.Settings) []SettingPair {
	return []SettingPair{
		{constants.SettingWindowSize, strconv.Itoa(s.WindowSize)},
		{constants.SettingSafetyMargin, strconv.Itoa(s.SafetyMargin)},
		{constants.SettingDeletableAfter, strconv.Itoa(s.DeletableAfter)},
	}
}

// ApplySetting sets the field named by key on s. Unknown keys are ignored so
// older binaries can read settings written by newer ones.
func ApplySetting(s *models.Settings, key, value string) error {
	var target *int
	switch key {
	case constants.SettingWindowSize:
		target = &s.WindowSize
	case constants.SettingSafetyMargin:
		target = &s.SafetyMargin
	case constants.SettingDeletableAfter:
		target = &s.DeletableAfter
	default:
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	*target = n
	return nil
}
