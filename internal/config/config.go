// Package config provides persistent configuration for the ramadan CLI.
//
// Settings live in a YAML file at ~/.config/ramadan-cli/config.yaml
// (XDG-compliant) and can be overridden with RAMADAN_* environment
// variables, optionally loaded from a .env file. The merge priority is:
// CLI flags > environment > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configDirName  = "ramadan-cli"
	configFileName = "config.yaml"

	// EnvPrefix is prepended to every key when reading the environment,
	// e.g. RAMADAN_CITY or RAMADAN_CACHE_DIR.
	EnvPrefix = "RAMADAN"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city", "country",
	"latitude", "longitude",
	"method", "school",
	"time_format",
	"cache_dir", "data_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	City       string
	Country    string
	Latitude   float64
	Longitude  float64
	Method     *int // nil means "not set"; 0 (Jafari) is a valid method
	School     *int
	TimeFormat string // "12h" or "24h"
	CacheDir   string
	DataDir    string
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	method := -1
	school := -1
	return Config{
		Method:     &method,
		School:     &school,
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Store reads and writes the config file.
type Store struct {
	path string
	v    *viper.Viper
}

// Open reads the config file at path and layers the RAMADAN_* environment
// on top of it. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	v, err := newViper(path, true)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, v: v}, nil
}

// OpenDefault opens the config file at the default location.
func OpenDefault() (*Store, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Config returns the merged file and environment values. Values that fail
// validation are reported as errors naming the offending key.
func (s *Store) Config() (*Config, error) {
	var cfg Config
	for _, key := range ValidKeys {
		if !s.v.IsSet(key) {
			continue
		}
		raw := s.v.GetString(key)
		if raw == "" {
			continue
		}
		if err := cfg.Set(key, raw); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Set validates value and persists it under key. Environment overrides are
// not written to the file.
func (s *Store) Set(key, value string) error {
	var parsed Config
	if err := parsed.Set(key, value); err != nil {
		return err
	}
	typed, _ := parsed.value(key)

	file, err := s.fileOnly()
	if err != nil {
		return err
	}
	file.Set(key, typed)
	if err := s.write(file); err != nil {
		return err
	}

	s.v.Set(key, typed)
	return nil
}

// Reset deletes the config file.
func (s *Store) Reset() error {
	if err := Remove(s.path); err != nil {
		return err
	}

	v, err := newViper(s.path, true)
	if err != nil {
		return err
	}
	s.v = v
	return nil
}

// Remove deletes the config file at path without reading it, so a file
// that no longer parses can still be reset. A missing file is not an error.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// fileOnly returns a viper instance holding just the file's values.
func (s *Store) fileOnly() (*viper.Viper, error) {
	return newViper(s.path, false)
}

func (s *Store) write(v *viper.Viper) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func newViper(path string, withEnv bool) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		for _, key := range ValidKeys {
			if err := v.BindEnv(key); err != nil {
				return nil, fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}
	}

	if err := readIfExists(v); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return v, nil
}

func readIfExists(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "country":
		c.Country = value
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "method":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be an integer", value)
		}
		if v < 0 || v > 23 {
			return fmt.Errorf("invalid method %q: must be between 0 and 23", value)
		}
		c.Method = &v
	case "school":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid school %q: must be an integer", value)
		}
		if v != 0 && v != 1 {
			return fmt.Errorf("invalid school %q: must be 0 (Shafi) or 1 (Hanafi)", value)
		}
		c.School = &v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "cache_dir":
		c.CacheDir = value
	case "data_dir":
		c.DataDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	v, err := c.value(key)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case nil:
		return "", nil
	case float64:
		if v == 0 {
			return "", nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// value returns the typed value stored under key, or nil when unset.
func (c *Config) value(key string) (any, error) {
	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "latitude":
		return c.Latitude, nil
	case "longitude":
		return c.Longitude, nil
	case "method":
		if c.Method == nil {
			return nil, nil
		}
		return *c.Method, nil
	case "school":
		if c.School == nil {
			return nil, nil
		}
		return *c.School, nil
	case "time_format":
		return c.TimeFormat, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "data_dir":
		return c.DataDir, nil
	default:
		return nil, fmt.Errorf("unknown config key %q", key)
	}
}

// HasCoordinates reports whether an explicit latitude/longitude pair is set.
func (c *Config) HasCoordinates() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// HasCity reports whether a city is set.
func (c *Config) HasCity() bool {
	return c.City != ""
}

// MethodOrDefault returns the method value, falling back to the given default.
func (c *Config) MethodOrDefault(def int) int {
	if c.Method != nil {
		return *c.Method
	}
	return def
}

// SchoolOrDefault returns the school value, falling back to the given default.
func (c *Config) SchoolOrDefault(def int) int {
	if c.School != nil {
		return *c.School
	}
	return def
}
