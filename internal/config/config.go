// Package config resolves runtime settings. Precedence, lowest first:
// defaults, the optional YAML file, TALLY_* environment variables, then
// command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	UIConsole = "console"
	UITUI     = "tui"

	LogFormatText = "text"
	LogFormatJSON = "json"

	fileName = ".tally"
)

var (
	ErrInvalidBackend   = errors.New("config: invalid backend")
	ErrInvalidUI        = errors.New("config: invalid ui")
	ErrInvalidLogFormat = errors.New("config: invalid log format")
	ErrInvalidLogLevel  = errors.New("config: invalid log level")
)

type RuntimeConfig struct {
	DataFile   string `yaml:"data_file" mapstructure:"data_file"`
	Backend    string `yaml:"backend" mapstructure:"backend"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	UI         string `yaml:"ui" mapstructure:"ui"`
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat  string `yaml:"log_format" mapstructure:"log_format"`
	LogFile    string `yaml:"log_file" mapstructure:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataFile:   "data/tally.txt",
		Backend:    BackendFile,
		SQLitePath: "data/tally.db",
		UI:         UIConsole,
		LogLevel:   "warn",
		LogFormat:  LogFormatText,
		LogFile:    "",
	}
}

// Load reads path when given, otherwise looks for .tally.yaml in the working
// directory and then $HOME. A missing file is not an error.
func Load(path string, base RuntimeConfig) (RuntimeConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetDefault("data_file", base.DataFile)
	v.SetDefault("backend", base.Backend)
	v.SetDefault("sqlite_path", base.SQLitePath)
	v.SetDefault("ui", base.UI)
	v.SetDefault("log_level", base.LogLevel)
	v.SetDefault("log_format", base.LogFormat)
	v.SetDefault("log_file", base.LogFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return RuntimeConfig{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.Normalized(), nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TALLY_DATA_FILE"); ok {
		cfg.DataFile = v
	}
	if v, ok := getEnvString("TALLY_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnvString("TALLY_SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("TALLY_UI"); ok {
		cfg.UI = v
	}
	if v, ok := getEnvString("TALLY_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TALLY_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvString("TALLY_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg.Normalized()
}

// Normalized lowercases and trims the enumerated settings so every source
// is matched the same way.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	c.Backend = normalizeChoice(c.Backend)
	c.UI = normalizeChoice(c.UI)
	c.LogLevel = normalizeChoice(c.LogLevel)
	c.LogFormat = normalizeChoice(c.LogFormat)
	return c
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	switch c.UI {
	case UIConsole, UITUI:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidUI, c.UI)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Backend == BackendFile && strings.TrimSpace(c.DataFile) == "" {
		return errors.New("config: data_file is required for the file backend")
	}
	if c.Backend == BackendSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		return errors.New("config: sqlite_path is required for the sqlite backend")
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c RuntimeConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func normalizeChoice(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
