package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	UI        UIConfig        `mapstructure:"ui"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the download service location
type ServerConfig struct {
	URL             string        `mapstructure:"url"`
	Timeout         time.Duration `mapstructure:"timeout"`          // Bound for /download and /organize
	OfflineInterval time.Duration `mapstructure:"offline_interval"` // Connectivity probe period
}

// DownloadsConfig holds where saved files land
type DownloadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`        // Used only until a preference is stored
	HistorySize int    `mapstructure:"history_size"` // Remembered URLs
	OpenCommand string `mapstructure:"open_command"` // Overrides the platform opener
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	Dir     string `mapstructure:"dir"`
	Persist bool   `mapstructure:"persist"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
	// MaxSizeMB rotates the log to <file>.1 at startup once it grows past
	// this size. Zero disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:             "http://localhost:5000",
			Timeout:         10 * time.Minute,
			OfflineInterval: 5 * time.Second,
		},
		Downloads: DownloadsConfig{
			Dir: defaultDownloadsPath(),
		},
		UI: UIConfig{
			Theme:       "light",
			HistorySize: 20,
		},
		Storage: StorageConfig{
			Dir:     defaultDataPath(),
			Persist: true,
		},
		Logging: LoggingConfig{
			File:      filepath.Join(defaultDataPath(), "tunedl.log"),
			Level:     "INFO",
			MaxSizeMB: 10,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tunedl")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tunedl")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tunedl")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tunedl")
	}
}

func defaultDownloadsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Downloads")
}

// Load reads configuration from file, environment and any flags already
// bound on v. An explicit file path wins over the search path.
func Load(v *viper.Viper, file string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. TUNEDL_SERVER_URL
	v.SetEnvPrefix("TUNEDL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	if cfg.UI.HistorySize < 0 {
		cfg.UI.HistorySize = 0
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("server.offline_interval", cfg.Server.OfflineInterval)
	v.SetDefault("downloads.dir", cfg.Downloads.Dir)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.history_size", cfg.UI.HistorySize)
	v.SetDefault("ui.open_command", cfg.UI.OpenCommand)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.persist", cfg.Storage.Persist)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
}

// Save writes the configuration to config.yaml in dir, or in the default
// config directory when dir is empty. It returns the written path.
func Save(v *viper.Viper, cfg *Config, dir string) (string, error) {
	configPath := dir
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("server.offline_interval", cfg.Server.OfflineInterval.String())
	v.Set("downloads.dir", cfg.Downloads.Dir)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.history_size", cfg.UI.HistorySize)
	v.Set("ui.open_command", cfg.UI.OpenCommand)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("storage.persist", cfg.Storage.Persist)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

// StoreDir returns the directory for the preference store, or "" for
// memory-only mode
func (c *Config) StoreDir() string {
	if !c.Storage.Persist {
		return ""
	}
	return c.Storage.Dir
}
