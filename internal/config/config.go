package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeIndex   = "index"
	ModeSectors = "sectors"
	ModeAll     = "all"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultIndexCSV    = "indices.csv"
	DefaultSectorCSV   = "sectors.csv"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the factsheet extraction tool
type Config struct {
	// Extraction configuration
	Mode           string // "index", "sectors" or "all"
	FactsheetDir   string // directory containing downloaded factsheet PDFs
	OutputDir      string // directory for generated CSV files
	Only           string // optional single factsheet stem to process
	ExpansionsFile string // optional YAML file with index-name abbreviation expansions

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:         ModeAll,
		FactsheetDir: currentDir,
		OutputDir:    filepath.Join(currentDir, "parsed_data"),
		Version:      "1.0.0",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.FactsheetDir != "" {
		if expandedPath, err := filepath.Abs(cfg.FactsheetDir); err == nil {
			cfg.FactsheetDir = expandedPath
		}
	}
	if cfg.OutputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDir); err == nil {
			cfg.OutputDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("FACTSHEET")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.FactsheetDir)
	viper.SetDefault("out", cfg.OutputDir)
	viper.SetDefault("only", cfg.Only)
	viper.SetDefault("expansions", cfg.ExpansionsFile)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode,
		"Extraction mode: 'index' for index records, 'sectors' for sector weights, 'all' for both")
	pflag.String("dir", cfg.FactsheetDir, "Directory containing factsheet PDF files")
	pflag.String("out", cfg.OutputDir, "Directory for generated CSV files")
	pflag.String("only", cfg.Only, "Process a single factsheet by filename stem (without .pdf)")
	pflag.String("expansions", cfg.ExpansionsFile, "YAML file with index-name abbreviation expansions")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("only", pflag.Lookup("only"))
	_ = viper.BindPFlag("expansions", pflag.Lookup("expansions"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nFactsheet Extract - parse index factsheet PDFs into CSV tables\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=./Factsheets --out=./parsed_data   # both tables\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=./Factsheets --mode=sectors        # sector weights only\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=./Factsheets --only=ind_nifty_200  # one factsheet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  FACTSHEET_MODE        Extraction mode\n")
		fmt.Fprintf(os.Stderr, "  FACTSHEET_DIR         Factsheet directory\n")
		fmt.Fprintf(os.Stderr, "  FACTSHEET_OUT         Output directory\n")
		fmt.Fprintf(os.Stderr, "  FACTSHEET_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  FACTSHEET_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.FactsheetDir = viper.GetString("dir")
	cfg.OutputDir = viper.GetString("out")
	cfg.Only = viper.GetString("only")
	cfg.ExpansionsFile = viper.GetString("expansions")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeIndex && c.Mode != ModeSectors && c.Mode != ModeAll {
		return errors.New("mode must be one of 'index', 'sectors' or 'all'")
	}

	if c.FactsheetDir == "" {
		return errors.New("factsheet directory cannot be empty")
	}

	// The factsheet directory holds downloaded input and must already exist
	info, err := os.Stat(c.FactsheetDir)
	if err != nil {
		return fmt.Errorf("cannot access factsheet directory %s: %w", c.FactsheetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("factsheet path is not a directory: %s", c.FactsheetDir)
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	// Output directory is created on demand
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if c.ExpansionsFile != "" {
		if _, err := os.Stat(c.ExpansionsFile); err != nil {
			return fmt.Errorf("cannot access expansions file %s: %w", c.ExpansionsFile, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IndexCSVPath returns the full path of the index table CSV
func (c *Config) IndexCSVPath() string {
	return filepath.Join(c.OutputDir, DefaultIndexCSV)
}

// SectorCSVPath returns the full path of the sector table CSV
func (c *Config) SectorCSVPath() string {
	return filepath.Join(c.OutputDir, DefaultSectorCSV)
}

// ExtractIndex returns true if index records should be extracted
func (c *Config) ExtractIndex() bool {
	return c.Mode == ModeIndex || c.Mode == ModeAll
}

// ExtractSectors returns true if sector weights should be extracted
func (c *Config) ExtractSectors() bool {
	return c.Mode == ModeSectors || c.Mode == ModeAll
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, FactsheetDir: %s, OutputDir: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.FactsheetDir, c.OutputDir, c.LogLevel, c.MaxFileSize)
}

// LoadExpansions reads the abbreviation-expansion table from the configured
// YAML file. Returns an empty map when no file is configured.
func (c *Config) LoadExpansions() (map[string]string, error) {
	if c.ExpansionsFile == "" {
		return map[string]string{}, nil
	}

	v := viper.New()
	v.SetConfigFile(c.ExpansionsFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read expansions file %s: %w", c.ExpansionsFile, err)
	}

	expansions := map[string]string{}
	for _, key := range v.AllKeys() {
		expansions[key] = v.GetString(key)
	}
	return expansions, nil
}
