package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/tailscale/hujson"
)

// Config holds application configuration.
type Config struct {
	StorageFile      string   `json:"storageFile"`
	LabelTrimPrefix  string   `json:"labelTrimPrefix"`
	Palette          []string `json:"palette"`
	CheckConcurrency int      `json:"checkConcurrency"`
	LogFile          string   `json:"logFile"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StorageFile:     "",
		LabelTrimPrefix: "Assets/",
		Palette: []string{
			"#ffffff", // untagged
			"#e06c75",
			"#d19a66",
			"#e5c07b",
			"#98c379",
			"#56b6c2",
			"#61afef",
			"#c678dd",
		},
		CheckConcurrency: 8,
		LogFile:          "",
	}
}

// LoadConfig reads config from the JSON file. Comments are allowed.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(standardized, &config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.LabelTrimPrefix == "" {
		config.LabelTrimPrefix = defaults.LabelTrimPrefix
	}
	if len(config.Palette) == 0 {
		config.Palette = defaults.Palette
	}
	if config.CheckConcurrency <= 0 {
		config.CheckConcurrency = defaults.CheckConcurrency
	}

	if _, err := config.PaletteColors(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, filePerms)
}

// PaletteColors parses the palette entries.
func (c *Config) PaletteColors() ([]model.Color, error) {
	colors := make([]model.Color, 0, len(c.Palette))
	for _, entry := range c.Palette {
		color, err := model.ParseColor(entry)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		colors = append(colors, color)
	}
	return colors, nil
}

// Location resolves the bookmarks file for projectRoot. An explicit override
// wins over the config's storageFile; relative values are taken from the
// project root. The result is passed through CleanLocation.
func (c *Config) Location(projectRoot, override string) string {
	file := override
	if file == "" {
		file = c.StorageFile
	}
	if file == "" {
		return CleanLocation(DefaultLocation(projectRoot))
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(projectRoot, file)
	}
	return CleanLocation(file)
}

// DefaultConfigFilePath returns the default config path: ~/.config/pathmarks/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "pathmarks", "config.json"), nil
}
