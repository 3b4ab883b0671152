package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig `yaml:"server"`
	Logging LogConfig    `yaml:"logging"`
}

// ServerConfig contains settings for the file server
type ServerConfig struct {
	Root   string `yaml:"root"`   // directory files are served from
	Listen string `yaml:"listen"` // bind address, host:port
	Suffix string `yaml:"suffix"` // appended to non-root request paths
}

// LogConfig contains settings for logging
type LogConfig struct {
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // maximum size in megabytes
	MaxBackups  int    `yaml:"max_backups"` // maximum number of old log files to retain
	MaxAge      int    `yaml:"max_age"`     // maximum number of days to retain old log files
	Compress    bool   `yaml:"compress"`    // compress determines if the rotated log files should be compressed
}

// LoadDefault returns a configuration with default values
func LoadDefault() *Config {
	return &Config{
		Server: ServerConfig{
			Root:   "",
			Listen: "localhost:8080",
			Suffix: ".html",
		},
		Logging: LogConfig{
			LogToFile:   false,
			LogFilePath: "staticserve.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

// Default returns a configuration with default values
// This is an alias for LoadDefault for backward compatibility
func Default() *Config {
	return LoadDefault()
}

// Load reads configuration from a file and merges it with default values
func Load(configPath string) (*Config, error) {
	// Start with default configuration
	cfg := LoadDefault()

	// Read configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Create a temporary config to parse the file
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge server configuration
	if fileCfg.Server.Root != "" {
		cfg.Server.Root = fileCfg.Server.Root
	}
	if fileCfg.Server.Listen != "" {
		cfg.Server.Listen = fileCfg.Server.Listen
	}
	if fileCfg.Server.Suffix != "" {
		cfg.Server.Suffix = fileCfg.Server.Suffix
	}

	// Check for STATICSERVE_LISTEN environment variable to override the bind address
	if envListen := os.Getenv("STATICSERVE_LISTEN"); envListen != "" {
		cfg.Server.Listen = envListen
	}

	// Merge logging configuration
	if fileCfg.Logging.LogToFile {
		cfg.Logging.LogToFile = fileCfg.Logging.LogToFile
	}
	if fileCfg.Logging.LogFilePath != "" {
		cfg.Logging.LogFilePath = fileCfg.Logging.LogFilePath
	}
	if fileCfg.Logging.MaxSize > 0 {
		cfg.Logging.MaxSize = fileCfg.Logging.MaxSize
	}
	if fileCfg.Logging.MaxBackups > 0 {
		cfg.Logging.MaxBackups = fileCfg.Logging.MaxBackups
	}
	if fileCfg.Logging.MaxAge > 0 {
		cfg.Logging.MaxAge = fileCfg.Logging.MaxAge
	}
	if fileCfg.Logging.Compress {
		cfg.Logging.Compress = fileCfg.Logging.Compress
	}

	return cfg, nil
}

// LoadOrDefault attempts to load configuration from a file
// If the file doesn't exist or can't be parsed, it returns default configuration
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Log the error but continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", configPath, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = LoadDefault()

		if envListen := os.Getenv("STATICSERVE_LISTEN"); envListen != "" {
			cfg.Server.Listen = envListen
		}
	}
	return cfg
}

// Validate checks that the configured root directory exists and rewrites it
// to its canonical absolute form. It must be called once before the server
// starts; the configuration is never mutated afterwards.
func (c *Config) Validate() error {
	if c.Server.Root == "" {
		return fmt.Errorf("no root directory configured")
	}

	abs, err := filepath.Abs(c.Server.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory %s: %w", c.Server.Root, err)
	}

	// Resolve symlinks so the containment check later compares canonical paths
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("root directory %s does not exist: %w", c.Server.Root, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return fmt.Errorf("failed to stat root directory %s: %w", canonical, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %s is not a directory", canonical)
	}

	c.Server.Root = canonical

	if c.Server.Listen == "" {
		c.Server.Listen = "localhost:8080"
	}
	if c.Server.Suffix == "" {
		c.Server.Suffix = ".html"
	}

	return nil
}
