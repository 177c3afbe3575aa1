package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Reconciliation configuration
	CollectionRoot   string
	MinTrashAgeHours int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.datadrift.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.SetEnvPrefix("DATADRIFT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Defaults
	viper.SetDefault("min_trash_age_hours", 72)
	viper.SetDefault("log_format", "auto")
	viper.SetDefault("log_output", "stderr")

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".datadrift")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	// Build config from viper
	config := &Config{
		Verbose:          viper.GetBool("verbose"),
		Quiet:            viper.GetBool("quiet"),
		NoColor:          viper.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		ConfigFile:       viper.ConfigFileUsed(),
		CollectionRoot:   viper.GetString("collection_root"),
		MinTrashAgeHours: viper.GetInt("min_trash_age_hours"),
		LogLevel:         viper.GetString("log_level"),
		LogFormat:        viper.GetString("log_format"),
		LogOutput:        viper.GetString("log_output"),
	}

	return config, nil
}

// UpdateFromFlags applies parsed cobra flag values over the loaded
// configuration. Flags take precedence over every other source.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	if verbose {
		c.Verbose = true
	}
	if quiet {
		c.Quiet = true
	}
	if noColor {
		c.NoColor = true
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env files from the working directory and its
// parents, closest file winning for each key.
func loadEnvFiles() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		envFile := filepath.Join(dir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			// Existing environment variables are preserved
			_ = godotenv.Load(envFile)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
