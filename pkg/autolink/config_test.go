package autolink

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benjaminschreck/go-autolink/pkg/autolink/detect"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.Emails || !config.URLs || !config.IPs || !config.Files {
		t.Errorf("DefaultConfig should enable every pattern class, got %+v", config)
	}

	if config.CacheMaxSize != 1000 {
		t.Errorf("DefaultConfig CacheMaxSize = %d, want 1000", config.CacheMaxSize)
	}

	if config.CacheTTL != 0 {
		t.Errorf("DefaultConfig CacheTTL = %v, want 0", config.CacheTTL)
	}

	if config.LogLevel != "info" {
		t.Errorf("DefaultConfig LogLevel = %s, want info", config.LogLevel)
	}

	if config.DryRun {
		t.Errorf("DefaultConfig DryRun = true, want false")
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		check   func(t *testing.T, config *Config)
	}{
		{
			name: "pattern classes",
			envVars: map[string]string{
				"AUTOLINK_EMAILS": "false",
				"AUTOLINK_FILES":  "0",
				"AUTOLINK_IPS":    "yes",
			},
			check: func(t *testing.T, config *Config) {
				if config.Emails || config.Files {
					t.Errorf("Emails/Files = %v/%v, want false/false", config.Emails, config.Files)
				}
				if !config.IPs || !config.URLs {
					t.Errorf("IPs/URLs = %v/%v, want true/true", config.IPs, config.URLs)
				}
			},
		},
		{
			name: "cache max size",
			envVars: map[string]string{
				"AUTOLINK_CACHE_MAX_SIZE": "50",
			},
			check: func(t *testing.T, config *Config) {
				if config.CacheMaxSize != 50 {
					t.Errorf("CacheMaxSize = %d, want 50", config.CacheMaxSize)
				}
			},
		},
		{
			name: "cache TTL",
			envVars: map[string]string{
				"AUTOLINK_CACHE_TTL": "5m",
			},
			check: func(t *testing.T, config *Config) {
				if config.CacheTTL != 5*time.Minute {
					t.Errorf("CacheTTL = %v, want 5m", config.CacheTTL)
				}
			},
		},
		{
			name: "invalid values are ignored",
			envVars: map[string]string{
				"AUTOLINK_CACHE_MAX_SIZE": "many",
				"AUTOLINK_CACHE_TTL":      "soon",
			},
			check: func(t *testing.T, config *Config) {
				if config.CacheMaxSize != 1000 {
					t.Errorf("CacheMaxSize = %d, want default 1000", config.CacheMaxSize)
				}
				if config.CacheTTL != 0 {
					t.Errorf("CacheTTL = %v, want default 0", config.CacheTTL)
				}
			},
		},
		{
			name: "log level and dry run",
			envVars: map[string]string{
				"AUTOLINK_LOG_LEVEL": "debug",
				"AUTOLINK_DRY_RUN":   "true",
			},
			check: func(t *testing.T, config *Config) {
				if config.LogLevel != "debug" {
					t.Errorf("LogLevel = %s, want debug", config.LogLevel)
				}
				if !config.DryRun {
					t.Error("DryRun = false, want true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			tt.check(t, ConfigFromEnvironment())
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}

	t.Run("toml", func(t *testing.T) {
		path := write("autolink.toml", `
files = false
cache_max_size = 10
cache_ttl = "90s"
log_level = "warn"
`)
		config, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		if config.Files {
			t.Error("Files = true, want false")
		}
		if !config.Emails {
			t.Error("Emails should keep its default")
		}
		if config.CacheMaxSize != 10 || config.CacheTTL != 90*time.Second {
			t.Errorf("cache = %d/%v, want 10/90s", config.CacheMaxSize, config.CacheTTL)
		}
		if config.LogLevel != "warn" {
			t.Errorf("LogLevel = %s, want warn", config.LogLevel)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		path := write("autolink.yml", "ips: false\ndry_run: true\ncache_ttl: 2m\n")
		config, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		if config.IPs || !config.DryRun || config.CacheTTL != 2*time.Minute {
			t.Errorf("unexpected config %+v", config)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := write("autolink.json", "{}")
		_, err := LoadConfigFile(path)
		if !IsConfigError(err) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := write("bad.yaml", "log_level: loud\n")
		_, err := LoadConfigFile(path)
		if !IsConfigError(err) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := write("broken.toml", "emails = [")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfigFile(filepath.Join(dir, "nope.toml")); err == nil {
			t.Error("expected read error")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "negative cache size", modify: func(c *Config) { c.CacheMaxSize = -1 }, wantErr: true},
		{name: "negative ttl", modify: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: true},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "upper case log level", modify: func(c *Config) { c.LogLevel = "DEBUG" }},
		{name: "logging off", modify: func(c *Config) { c.LogLevel = "off" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDetectOptions(t *testing.T) {
	config := DefaultConfig()
	config.URLs = false

	want := detect.Options{Emails: true, URLs: false, IPs: true, Files: true}
	if got := config.DetectOptions(); got != want {
		t.Errorf("DetectOptions() = %+v, want %+v", got, want)
	}
}

func TestNewConfigWithDefaults(t *testing.T) {
	if config := NewConfigWithDefaults(nil); config.LogLevel != "info" {
		t.Errorf("nil overrides should yield defaults, got %+v", config)
	}

	overrides := &Config{Emails: true}
	config := NewConfigWithDefaults(overrides)
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", config.LogLevel)
	}
	if config == overrides {
		t.Error("NewConfigWithDefaults should return a copy")
	}
	if config.URLs {
		t.Error("explicit false values must be kept")
	}
}

func TestGlobalConfig(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	custom := DefaultConfig()
	custom.Files = false
	custom.LogLevel = "error"
	SetGlobalConfig(custom)

	got := GetGlobalConfig()
	if got.Files {
		t.Error("global config was not updated")
	}
	got.Files = true
	if GetGlobalConfig().Files {
		t.Error("GetGlobalConfig should return a copy")
	}
	if GetLogger().Level() != LogError {
		t.Errorf("logger level = %v, want ERROR", GetLogger().Level())
	}
}
