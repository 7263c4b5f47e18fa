package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fitctl/pkg/cache"
	"fitctl/pkg/scraper"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	CacheDir    string `json:"cache_dir,omitempty"`
	Year        int    `json:"year,omitempty"`
	StudyType   string `json:"study_type,omitempty"`
	ProgramID   int    `json:"program_id,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"`
	DefaultSpec string `json:"default_spec,omitempty"`
	PlanFile    string `json:"plan_file,omitempty"`
	AccentColor string `json:"accent_color,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
}

// getConfigPath returns the absolute path to ~/.fitctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".fitctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ScraperOptions fills unset values with the scraper defaults
func (c *AppConfig) ScraperOptions() scraper.Options {
	opts := scraper.DefaultOptions()
	if c.BaseURL != "" {
		opts.BaseURL = c.BaseURL
	}
	if c.Year != 0 {
		opts.Year = c.Year
	}
	if c.StudyType != "" {
		opts.StudyType = c.StudyType
	}
	if c.ProgramID != 0 {
		opts.ProgramID = c.ProgramID
	}
	if c.Concurrency > 0 {
		opts.Concurrency = c.Concurrency
	}
	return opts
}

// CachePaths returns the course and specialization snapshot paths
func (c *AppConfig) CachePaths() (courses, specs string, err error) {
	dir := c.CacheDir
	if dir == "" {
		dir, err = cache.DefaultDir()
		if err != nil {
			return "", "", err
		}
	}
	return filepath.Join(dir, "courses.json"), filepath.Join(dir, "specializations.json"), nil
}
