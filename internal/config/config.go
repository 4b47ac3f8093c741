// Package config resolves runtime settings from a config file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/utils"
)

const (
	KeyDatabase   = "database"
	KeyTimezone   = "timezone"
	KeyDebug      = "debug"
	KeyLogDir     = "log_dir"
	KeyAutoBackup = "auto_backup"
)

type Config struct {
	Database   string `mapstructure:"database"`
	Timezone   string `mapstructure:"timezone"`
	Debug      bool   `mapstructure:"debug"`
	LogDir     string `mapstructure:"log_dir"`
	AutoBackup bool   `mapstructure:"auto_backup"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// LoadEnv loads the given .env files into the process environment.
// Missing files are skipped; existing variables are not overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Overrides are command-line values that take precedence over the
// environment and the config file. Zero values are ignored.
type Overrides struct {
	Database string
	Timezone string
	Debug    bool
}

func (o Overrides) apply(v *viper.Viper) {
	if o.Database != "" {
		v.Set(KeyDatabase, o.Database)
	}
	if o.Timezone != "" {
		v.Set(KeyTimezone, o.Timezone)
	}
	if o.Debug {
		v.Set(KeyDebug, true)
	}
}

// Load reads configuration. An empty path searches the default config
// directory for a file named "config" in any format viper supports; a
// missing default file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	return LoadWithOverrides(path, Overrides{})
}

// LoadWithOverrides is Load with flag values applied before derived
// settings such as the default log directory are resolved.
func LoadWithOverrides(path string, ov Overrides) (Config, error) {
	v := viper.New()

	v.SetDefault(KeyDatabase, constants.DefaultConfigPath)
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyAutoBackup, true)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// MAYFLY_DB is the documented short form
	if err := v.BindEnv(KeyDatabase, constants.EnvPrefix+"_DB", constants.EnvPrefix+"_DATABASE"); err != nil {
		return Config{}, err
	}

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", expanded, err)
		}
	} else {
		dir, err := ExpandPath(constants.DefaultConfigDir)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(constants.DefaultConfigFile)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	ov.apply(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	db, err := ExpandPath(c.Database)
	if err != nil {
		return err
	}
	c.Database = db

	if c.LogDir == "" {
		c.LogDir = filepath.Join(filepath.Dir(c.Database), "logs")
	} else if c.LogDir, err = ExpandPath(c.LogDir); err != nil {
		return err
	}

	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// Location returns the timezone that defines the calendar day.
func (c Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
