package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"expectgroup/internal/expectations"
	"expectgroup/internal/report"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "EXPECTGROUP"

// ConfigName is the base name of the optional config file. Any extension
// viper understands is accepted (.json, .yaml, .toml).
const ConfigName = ".expectgroup"

// Config represents the optional settings of an expectgroup run.
// The zero-argument run uses DefaultConfig unchanged.
type Config struct {
	Input    string        `json:"input" mapstructure:"input"`
	Format   string        `json:"format" mapstructure:"format"`
	Outcomes []string      `json:"outcomes" mapstructure:"outcomes"`
	Top      int           `json:"top" mapstructure:"top"`
	Logging  LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input:    expectations.DefaultPath,
		Format:   "human",
		Outcomes: []string{},
		Top:      0,
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// EnvOverride records a setting taken from the environment.
type EnvOverride struct {
	Key    string `json:"key"`
	EnvVar string `json:"envVar"`
	Value  string `json:"value"`
}

// LoadResult is a loaded Config plus where its values came from.
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

var settingKeys = []string{"input", "format", "outcomes", "top", "logging.level"}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// LoadConfig loads configuration for a run started in dir.
//
// A .env file in dir is loaded into the environment first if present; it
// never replaces variables that are already set. explicitPath, when not
// empty, names the config file and must exist. Otherwise .expectgroup.* in
// dir is used if present.
func LoadConfig(dir, explicitPath string) (*LoadResult, error) {
	if dir == "" {
		dir = "."
	}
	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("outcomes", defaults.Outcomes)
	v.SetDefault("top", defaults.Top)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dir)
	}

	result := &LoadResult{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return nil, &ConfigError{Field: "file", Message: err.Error()}
		}
		result.UsedDefaults = true
	} else {
		result.ConfigPath = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	cfg.Outcomes = splitList(cfg.Outcomes)
	result.Config = &cfg

	for _, key := range settingKeys {
		name := EnvVar(key)
		if val, ok := os.LookupEnv(name); ok {
			result.EnvOverrides = append(result.EnvOverrides, EnvOverride{Key: key, EnvVar: name, Value: val})
		}
	}

	return result, nil
}

func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &ConfigError{Field: ".env", Message: err.Error()}
	}
	return nil
}

// splitList flattens comma-separated entries, which is how a list arrives
// from an environment variable.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return &ConfigError{Field: "input", Message: "must not be empty"}
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return &ConfigError{Field: "format", Message: err.Error()}
	}
	if c.Top < 0 {
		return &ConfigError{Field: "top", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
