package appconf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g. CARDDASH_PORT
const EnvPrefix = "CARDDASH"

// Config holds all the configuration settings for the Application.
type Config struct {
	Port      int         `mapstructure:"port" validate:"min=1,max=65535"`
	Env       Environment `mapstructure:"-"`
	ApiKeys   []string    `mapstructure:"api-keys" validate:"min=1,dive,required"`
	RateLimit int         `mapstructure:"rate-limit" validate:"min=0"`
	DataURL   string      `mapstructure:"data-url" validate:"required"`
	LogLevel  slog.Level  `mapstructure:"-"`
	TopN      int         `mapstructure:"top-n" validate:"min=1,max=100"`
	Bins      int         `mapstructure:"bins" validate:"min=1,max=200"`
	Verbose   bool        `mapstructure:"verbose"`
}

var configValidate = validator.New()

// SetDefaults registers the default value of every setting on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 4000)
	v.SetDefault("env", "development")
	v.SetDefault("api-keys", []string{"test"})
	v.SetDefault("rate-limit", 100)
	v.SetDefault("data-url", "data.zip")
	v.SetDefault("log-level", "info")
	v.SetDefault("top-n", 10)
	v.SetDefault("bins", 20)
	v.SetDefault("verbose", false)
}

// Load resolves the configuration from, in increasing precedence: defaults, the
// optional config file, CARDDASH_* environment variables and explicitly set flags.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Env = EnvFlagToEnvironment(v.GetString("env"))
	cfg.ApiKeys = splitKeys(v.GetStringSlice("api-keys"))

	level, err := ParseLogLevel(v.GetString("log-level"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if err := configValidate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ParseLogLevel accepts debug, info, warn and error, case-insensitively
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// splitKeys accepts both repeated values and comma separated lists.
func splitKeys(raw []string) []string {
	keys := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, key := range strings.Split(entry, ",") {
			key = strings.TrimSpace(key)
			if key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys
}
