package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TablePrefs stores per-board UI preferences. Filters, search and sort are
// session state and are not persisted.
type TablePrefs struct {
	ActiveColumn string `json:"active_column"`
}

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	LastScreen string                `json:"last_screen"`
	Boards     map[string]TablePrefs `json:"boards"`
}

func defaultUIPreferences() UIPreferences {
	return UIPreferences{Boards: map[string]TablePrefs{}}
}

// loadUIPreferences reads prefs from path. An empty path or unreadable
// file yields defaults.
func loadUIPreferences(path string) UIPreferences {
	if path == "" {
		return defaultUIPreferences()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaultUIPreferences()
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return defaultUIPreferences()
	}
	if prefs.Boards == nil {
		prefs.Boards = map[string]TablePrefs{}
	}
	return prefs
}

func saveUIPreferences(path string, prefs UIPreferences) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
