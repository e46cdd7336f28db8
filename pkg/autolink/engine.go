// Package autolink turns plain-text email addresses, URLs, IP addresses and
// file paths in Microsoft Word documents (DOCX) into clickable hyperlinks.
//
// Basic Usage:
//
//	summary, err := autolink.LinkifyFile("report.docx", "report.linked.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.Message())
//
// Every run of text in the main document, the headers, the footers and the
// notes is handed to a pattern detector. Runs containing matches are split
// into plain runs and hyperlinks that keep the run's formatting. Text that
// is already linked, and field results, are left alone.
//
// Which pattern classes are linked is controlled by Config:
//
//	cfg := autolink.DefaultConfig()
//	cfg.Files = false
//	engine := autolink.NewWithConfig(cfg)
//	output, summary, err := engine.Linkify(input)
package autolink

import (
	"io"

	"github.com/benjaminschreck/go-autolink/pkg/autolink/detect"
)

// Engine runs linkify passes. An Engine may be shared between goroutines
// working on different documents, but SetConfig and SetLogger must not race
// with a pass.
type Engine struct {
	config *Config
	cache  *detect.Cache
	logger *Logger
}

// New returns an engine using the global configuration.
func New() *Engine {
	return NewWithConfig(GetGlobalConfig())
}

// NewWithConfig returns an engine using config. Unset fields take their
// defaults.
func NewWithConfig(config *Config) *Engine {
	e := &Engine{logger: GetLogger()}
	e.SetConfig(config)
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// SetConfig replaces the engine's configuration and starts a fresh
// detection cache sized from it.
func (e *Engine) SetConfig(config *Config) {
	e.config = NewConfigWithDefaults(config)
	e.cache = detect.NewCache(detect.CacheConfig{
		MaxSize: e.config.CacheMaxSize,
		TTL:     e.config.CacheTTL,
	})
}

// SetLogger replaces the logger the engine writes to.
func (e *Engine) SetLogger(logger *Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// CacheStats reports the detection cache's effectiveness.
func (e *Engine) CacheStats() detect.CacheStats {
	return e.cache.Stats()
}

// ClearCache removes all remembered detection results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.SetConfig(config)
	}
}

// WithCache returns an option that sets the cache size (0 disables caching).
func WithCache(maxSize int) Option {
	return func(e *Engine) {
		config := *e.config
		config.CacheMaxSize = maxSize
		e.SetConfig(&config)
	}
}

// WithLogger returns an option that sets the engine's logger.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		e.SetLogger(logger)
	}
}

// NewWithOptions creates a new engine with the specified options.
func NewWithOptions(opts ...Option) *Engine {
	engine := New()
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Linkify runs a pass over the package read from r with a fresh engine.
func Linkify(r io.Reader) (io.Reader, *Summary, error) {
	return New().Linkify(r)
}

// LinkifyFile runs a pass over the package at in with a fresh engine and
// writes the result to out.
func LinkifyFile(in, out string) (*Summary, error) {
	return New().LinkifyFile(in, out)
}
