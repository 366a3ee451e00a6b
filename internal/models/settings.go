package models

// SettingsPanel is the toggle a UI host renders for the rotator.
type SettingsPanel struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}
