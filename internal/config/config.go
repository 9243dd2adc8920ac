package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SourceConfig names the page holding the ramp map and the ramp detail URL prefix.
type SourceConfig struct {
	URL         string `yaml:"url" mapstructure:"url"`
	RampBaseURL string `yaml:"ramp_base_url" mapstructure:"ramp_base_url"`
}

// FetchConfig configures the page download.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxBytes    int64  `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// OutputConfig configures where the GeoJSON file is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BOATRAMPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.url", "https://www.batramper.se/karta")
	v.SetDefault("source.ramp_base_url", "https://www.batramper.se/ramp/")
	v.SetDefault("fetch.user_agent", "boatramps/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_bytes", 16<<20)
	v.SetDefault("output.path", "public/data/boatramps.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the values a scrape run depends on are usable.
func (c *Config) Validate() error {
	if err := validateHTTPURL("source.url", c.Source.URL); err != nil {
		return err
	}
	if err := validateHTTPURL("source.ramp_base_url", c.Source.RampBaseURL); err != nil {
		return err
	}
	if c.Fetch.TimeoutSecs <= 0 {
		return eris.Errorf("config: fetch.timeout_secs must be positive, got %d", c.Fetch.TimeoutSecs)
	}
	if c.Fetch.MaxBytes <= 0 {
		return eris.Errorf("config: fetch.max_bytes must be positive, got %d", c.Fetch.MaxBytes)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return eris.New("config: output.path is required")
	}
	return nil
}

func validateHTTPURL(key, raw string) error {
	if raw == "" {
		return eris.Errorf("config: %s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return eris.Wrapf(err, "config: parse %s", key)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return eris.Errorf("config: %s must be an http(s) URL, got %q", key, raw)
	}
	if u.Host == "" {
		return eris.Errorf("config: %s has no host: %q", key, raw)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
