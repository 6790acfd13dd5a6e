package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/festivalmap/festivals/internal/dataset"
	"github.com/festivalmap/festivals/internal/fetch"
	"github.com/festivalmap/festivals/internal/logger"
	"github.com/festivalmap/festivals/internal/scraper"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FESTIVALS_"

// Config is the full runtime configuration
type Config struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	OutputDir   string        `yaml:"output_dir" validate:"required"`
	PageDelay   time.Duration `yaml:"page_delay" validate:"gte=1s"`
	DetailDelay time.Duration `yaml:"detail_delay" validate:"gte=300ms"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent   string        `yaml:"user_agent" validate:"required"`
	Workers     int           `yaml:"workers" validate:"min=1,max=8"`
	Headless    bool          `yaml:"headless"`
	ChromePath  string        `yaml:"chrome_path"`
	LogLevel    string        `yaml:"log_level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Server      ServerConfig  `yaml:"server"`
}

// ServerConfig configures the UI server.
type ServerConfig struct {
	Addr     string `yaml:"addr" validate:"required,hostname_port"`
	PageSize int    `yaml:"page_size" validate:"min=1,max=100"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		BaseURL:     scraper.BaseURL,
		OutputDir:   dataset.DefaultDir,
		PageDelay:   scraper.DefaultPageDelay,
		DetailDelay: scraper.DefaultDetailDelay,
		Timeout:     fetch.DefaultTimeout,
		UserAgent:   fetch.DefaultUserAgent,
		Workers:     1,
		Headless:    true,
		LogLevel:    "info",
		Server: ServerConfig{
			Addr:     "127.0.0.1:8080",
			PageSize: 12,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if not
// empty) and the process environment, then validates it.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BASE_URL":    &c.BaseURL,
		"OUTPUT_DIR":  &c.OutputDir,
		"USER_AGENT":  &c.UserAgent,
		"CHROME_PATH": &c.ChromePath,
		"LOG_LEVEL":   &c.LogLevel,
		"ADDR":        &c.Server.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"PAGE_DELAY":   &c.PageDelay,
		"DETAIL_DELAY": &c.DetailDelay,
		"TIMEOUT":      &c.Timeout,
	}
	for key, dst := range durations {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"WORKERS":   &c.Workers,
		"PAGE_SIZE": &c.Server.PageSize,
	}
	for key, dst := range ints {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	if v, ok := lookup(EnvPrefix + "HEADLESS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sHEADLESS: %w", EnvPrefix, err)
		}
		c.Headless = b
	}

	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s fails %q (%s)", fe.Namespace(), fe.Tag(), fe.Param())
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Level returns the parsed log level.
func (c *Config) Level() logger.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}
