package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Viewer ViewerConfig `mapstructure:"viewer"`
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`

	// Snapshot, when set, makes the viewer render to an HTML file instead of the terminal
	Snapshot string `mapstructure:"snapshot"`
	Pages    int    `mapstructure:"pages"`
}

// ViewerConfig holds book API client configuration
type ViewerConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	Proxy                string `mapstructure:"proxy"`
}

// ServerConfig holds book API server configuration
type ServerConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	OutputsDir string `mapstructure:"outputs_dir"`
}

// Addr is the listen address of the server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig holds Redis connection details for the book cache
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	BookTTL  int    `mapstructure:"book_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

// Flags returns the command-line flags understood by Load
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to config file")
	fs.String("base-url", "", "book API base URL")
	fs.String("snapshot", "", "write the rendered page as HTML to this file and exit")
	fs.Int("pages", 0, "pages to advance before writing the snapshot")
	fs.String("host", "", "server host to bind")
	fs.Int("port", 0, "server port to bind")
	fs.String("outputs-dir", "", "directory holding story runs")
	return fs
}

// Load loads configuration from an optional YAML file with environment and
// flag overrides. Unset flags do not override file or env values.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("STORYVIEWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
		bindFlags(v, flags)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Pages < 0 {
		return nil, fmt.Errorf("pages must not be negative, got %d", config.Pages)
	}

	return &config, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	keys := map[string]string{
		"base-url":    "viewer.base_url",
		"snapshot":    "snapshot",
		"pages":       "pages",
		"host":        "server.host",
		"port":        "server.port",
		"outputs-dir": "server.outputs_dir",
	}
	for name, key := range keys {
		if f := flags.Lookup(name); f != nil && f.Changed {
			_ = v.BindPFlag(key, f)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("viewer.base_url", "http://127.0.0.1:8787")
	v.SetDefault("viewer.timeout", 30)
	v.SetDefault("viewer.max_retries", 0)
	v.SetDefault("viewer.max_requests_per_second", 0)
	v.SetDefault("viewer.proxy", "")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.outputs_dir", "./outputs")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.book_ttl", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "text")

	v.SetDefault("snapshot", "")
	v.SetDefault("pages", 0)
}
