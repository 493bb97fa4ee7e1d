/*
Package config manages TOML config for launchsift.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"launchsift/internal/utils"
	"launchsift/pkg/search"
)

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Server  ServerConfig  `toml:"server"`
	Library LibraryConfig `toml:"library"`
}

// SearchConfig has ranking engine options.
type SearchConfig struct {
	Threshold          float64 `toml:"threshold"`
	MaxResults         int     `toml:"max_results"`
	AsyncDelayMs       int     `toml:"async_delay_ms"`
	InstallStatusFirst bool    `toml:"install_status_first"`
	SliceBudgetMs      int     `toml:"slice_budget_ms"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxQueryLen  int `toml:"max_query_len"`
	DefaultLimit int `toml:"default_limit"`
}

// LibraryConfig holds library source options.
type LibraryConfig struct {
	IncludeHidden bool   `toml:"include_hidden"`
	RecentPrefix  string `toml:"recent_prefix"`
	RecentMax     int    `toml:"recent_max"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "launchsift")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "launchsift")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/launchsift/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	defaults := search.DefaultParams()
	return &Config{
		Search: SearchConfig{
			Threshold:          defaults.Threshold,
			MaxResults:         defaults.MaxResults,
			AsyncDelayMs:       int(defaults.AsyncDelay / time.Millisecond),
			InstallStatusFirst: defaults.InstallStatusFirst,
			SliceBudgetMs:      int(defaults.SliceBudget / time.Millisecond),
		},
		Server: ServerConfig{
			MaxQueryLen:  256,
			DefaultLimit: 20,
		},
		Library: LibraryConfig{
			IncludeHidden: false,
			RecentPrefix:  "r:",
			RecentMax:     30,
		},
	}
}

// Params converts the search section into engine parameters.
func (c *Config) Params() search.Params {
	return search.Params{
		Threshold:          c.Search.Threshold,
		MaxResults:         c.Search.MaxResults,
		AsyncDelay:         time.Duration(c.Search.AsyncDelayMs) * time.Millisecond,
		InstallStatusFirst: c.Search.InstallStatusFirst,
		SliceBudget:        time.Duration(c.Search.SliceBudgetMs) * time.Millisecond,
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if librarySection, ok := utils.ExtractSection(tempConfig, "library"); ok {
		extractLibraryConfig(librarySection, &config.Library)
	}
	return config, nil
}

// extractSearchConfig extracts search configuration from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractFloat64(data, "threshold"); ok {
		search.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		search.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "async_delay_ms"); ok {
		search.AsyncDelayMs = val
	}
	if val, ok := utils.ExtractBool(data, "install_status_first"); ok {
		search.InstallStatusFirst = val
	}
	if val, ok := utils.ExtractInt64(data, "slice_budget_ms"); ok {
		search.SliceBudgetMs = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
}

// extractLibraryConfig extracts library source config from a map
func extractLibraryConfig(data map[string]any, lib *LibraryConfig) {
	if val, ok := utils.ExtractBool(data, "include_hidden"); ok {
		lib.IncludeHidden = val
	}
	if val, ok := utils.ExtractString(data, "recent_prefix"); ok {
		lib.RecentPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "recent_max"); ok {
		lib.RecentMax = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the config values and saves to file
func (c *Config) Update(configPath string, threshold *float64, maxResults, asyncDelayMs *int, installStatusFirst *bool) error {
	s := &c.Search
	if threshold != nil {
		s.Threshold = *threshold
	}
	if maxResults != nil {
		s.MaxResults = *maxResults
	}
	if asyncDelayMs != nil {
		s.AsyncDelayMs = *asyncDelayMs
	}
	if installStatusFirst != nil {
		s.InstallStatusFirst = *installStatusFirst
	}
	return SaveConfig(c, configPath)
}
