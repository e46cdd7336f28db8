package autolink

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-autolink/pkg/autolink/detect"
)

// Config selects what a pass links and how the engine caches and logs.
type Config struct {
	// Emails, URLs, IPs and Files select which pattern classes are linked.
	Emails bool `toml:"emails" yaml:"emails"`
	URLs   bool `toml:"urls" yaml:"urls"`
	IPs    bool `toml:"ips" yaml:"ips"`
	Files  bool `toml:"files" yaml:"files"`
	// CacheMaxSize is the number of detection results to remember. 0 disables caching.
	CacheMaxSize int `toml:"cache_max_size" yaml:"cache_max_size"`
	// CacheTTL is the time-to-live for cached results. 0 means no expiration.
	CacheTTL time.Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// DryRun runs the pass and reports what would change without writing
	// the modified package.
	DryRun bool `toml:"dry_run" yaml:"dry_run"`
}

var (
	sharedConfig   *Config
	sharedConfigMu sync.RWMutex
	sharedOnce     sync.Once
)

func loadSharedConfig() {
	sharedOnce.Do(func() {
		sharedConfigMu.Lock()
		sharedConfig = ConfigFromEnvironment()
		sharedConfigMu.Unlock()
	})
}

// DefaultConfig links every pattern class, caches 1000 detection results
// without expiry and logs at info.
func DefaultConfig() *Config {
	return &Config{
		Emails:       true,
		URLs:         true,
		IPs:          true,
		Files:        true,
		CacheMaxSize: 1000,
		LogLevel:     "info",
	}
}

// ConfigFromEnvironment is DefaultConfig with the AUTOLINK_* variables
// applied.
func ConfigFromEnvironment() *Config {
	return ApplyEnvironment(DefaultConfig())
}

// ApplyEnvironment overrides fields of config with the AUTOLINK_*
// environment variables that are set, and returns config. Values that do
// not parse are ignored.
func ApplyEnvironment(config *Config) *Config {
	flags := []struct {
		env   string
		field *bool
	}{
		{"AUTOLINK_EMAILS", &config.Emails},
		{"AUTOLINK_URLS", &config.URLs},
		{"AUTOLINK_IPS", &config.IPs},
		{"AUTOLINK_FILES", &config.Files},
		{"AUTOLINK_DRY_RUN", &config.DryRun},
	}
	for _, f := range flags {
		if v, ok := lookupEnv(f.env); ok {
			*f.field = parseBool(v)
		}
	}

	if v, ok := lookupEnv("AUTOLINK_CACHE_MAX_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.CacheMaxSize = n
		}
	}
	if v, ok := lookupEnv("AUTOLINK_CACHE_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.CacheTTL = d
		}
	}
	if v, ok := lookupEnv("AUTOLINK_LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	return config
}

// lookupEnv treats an empty variable as unset.
func lookupEnv(name string) (string, bool) {
	v := os.Getenv(name)
	return v, v != ""
}

// LoadConfigFile reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// default configuration. Keys absent from the file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	var decode func([]byte, *Config) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		decode = func(data []byte, c *Config) error {
			_, err := toml.Decode(string(data), c)
			return err
		}
	case ".yaml", ".yml":
		decode = func(data []byte, c *Config) error {
			return yaml.Unmarshal(data, c)
		}
	default:
		return nil, &ConfigError{Field: "path", Value: path, Message: "unsupported config format, use .toml, .yaml or .yml"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()
	if err := decode(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// NewConfigWithDefaults copies overrides and fills in the fields whose
// zero value is not usable. A nil overrides yields DefaultConfig.
func NewConfigWithDefaults(overrides *Config) *Config {
	if overrides == nil {
		return DefaultConfig()
	}
	config := *overrides
	if config.LogLevel == "" {
		config.LogLevel = DefaultConfig().LogLevel
	}
	return &config
}

var logLevelNames = []string{"debug", "info", "warn", "error", "off"}

// Validate reports the first invalid field as a *ConfigError.
func (c *Config) Validate() error {
	switch {
	case c.CacheMaxSize < 0:
		return &ConfigError{Field: "cache_max_size", Value: c.CacheMaxSize, Message: "cannot be negative"}
	case c.CacheTTL < 0:
		return &ConfigError{Field: "cache_ttl", Value: c.CacheTTL, Message: "cannot be negative"}
	case !slices.Contains(logLevelNames, strings.ToLower(c.LogLevel)):
		return &ConfigError{Field: "log_level", Value: c.LogLevel, Message: "must be one of " + strings.Join(logLevelNames, ", ")}
	}
	return nil
}

// DetectOptions builds the detector options for one pass.
func (c *Config) DetectOptions() detect.Options {
	return detect.Options{
		Emails: c.Emails,
		URLs:   c.URLs,
		IPs:    c.IPs,
		Files:  c.Files,
	}
}

// GetGlobalConfig returns a copy of the package configuration. It starts
// out as ConfigFromEnvironment.
func GetGlobalConfig() *Config {
	loadSharedConfig()
	sharedConfigMu.RLock()
	defer sharedConfigMu.RUnlock()

	if sharedConfig == nil {
		return DefaultConfig()
	}
	c := *sharedConfig
	return &c
}

// SetGlobalConfig replaces the package configuration and moves the package
// logger to its log level.
func SetGlobalConfig(config *Config) {
	loadSharedConfig()
	sharedConfigMu.Lock()
	sharedConfig = config
	sharedConfigMu.Unlock()

	UpdateLoggerFromConfig()
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
