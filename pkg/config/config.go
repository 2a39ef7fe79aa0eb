package config

import (
	"time"

	"github.com/sdejongh/sortnorris/pkg/audit"
	"github.com/sdejongh/sortnorris/pkg/digest"
	"github.com/sdejongh/sortnorris/pkg/models"
	"github.com/sdejongh/sortnorris/pkg/ratelimit"
)

// DefaultLockFile is created next to the audit logs during a non-preview run
const DefaultLockFile = ".sortnorris.lock"

// Config represents the application configuration
type Config struct {
	Relocate RelocateConfig `yaml:"relocate" toml:"relocate"`
	Hash     HashConfig     `yaml:"hash" toml:"hash"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// RelocateConfig holds run-level settings
type RelocateConfig struct {
	IndexFile    string   `yaml:"index_file" toml:"index_file"`
	VerifyScript string   `yaml:"verify_script" toml:"verify_script"`
	FailureFile  string   `yaml:"failure_file" toml:"failure_file"`
	LockFile     string   `yaml:"lock_file" toml:"lock_file"`
	Timezone     string   `yaml:"timezone" toml:"timezone"` // IANA name, "Local" or "UTC"
	Exclude      []string `yaml:"exclude" toml:"exclude"`
}

// HashConfig holds duplicate detection settings
type HashConfig struct {
	Algorithm      string `yaml:"algorithm" toml:"algorithm"`             // "sha256" or "md5"
	BufferSize     int    `yaml:"buffer_size" toml:"buffer_size"`         // read block size in bytes
	BandwidthLimit string `yaml:"bandwidth_limit" toml:"bandwidth_limit"` // e.g. "50MB", empty = unlimited
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format" toml:"format"`     // "human" or "json"
	Progress bool   `yaml:"progress" toml:"progress"` // Show a progress bar on terminals
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" toml:"format"` // log file format: "json" or "text"
	File   string `yaml:"file" toml:"file"`     // optional log file, console only when empty
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Relocate: RelocateConfig{
			IndexFile:    audit.DefaultIndexFile,
			VerifyScript: audit.DefaultVerifyFile,
			FailureFile:  audit.DefaultFailureFile,
			LockFile:     DefaultLockFile,
			Timezone:     "Local",
		},
		Hash: HashConfig{
			Algorithm:  string(models.HashSHA256),
			BufferSize: digest.DefaultBlockSize,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	names := map[string]string{
		"relocate.index_file":    c.Relocate.IndexFile,
		"relocate.verify_script": c.Relocate.VerifyScript,
		"relocate.failure_file":  c.Relocate.FailureFile,
		"relocate.lock_file":     c.Relocate.LockFile,
	}
	for field, value := range names {
		if value == "" {
			return &models.ValidationError{Field: field, Message: "must not be empty"}
		}
	}

	if _, err := c.Location(); err != nil {
		return &models.ValidationError{
			Field:   "relocate.timezone",
			Message: "unknown time zone " + c.Relocate.Timezone,
		}
	}

	switch models.HashAlgorithm(c.Hash.Algorithm) {
	case models.HashSHA256, models.HashMD5:
	default:
		return &models.ValidationError{
			Field:   "hash.algorithm",
			Message: "must be 'sha256' or 'md5'",
		}
	}

	if c.Hash.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "hash.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if _, err := ratelimit.ParseBandwidth(c.Hash.BandwidthLimit); err != nil {
		return &models.ValidationError{
			Field:   "hash.bandwidth_limit",
			Message: err.Error(),
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// Location resolves the configured time zone used for date directories
func (c *Config) Location() (*time.Location, error) {
	switch c.Relocate.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Relocate.Timezone)
	}
}

// BandwidthLimit returns the hashing bandwidth limit in bytes per second
func (c *Config) BandwidthLimit() int64 {
	limit, _ := ratelimit.ParseBandwidth(c.Hash.BandwidthLimit)
	return limit
}

// AuditPaths returns the locations of the three audit logs
func (c *Config) AuditPaths() audit.Paths {
	return audit.Paths{
		Index:   c.Relocate.IndexFile,
		Verify:  c.Relocate.VerifyScript,
		Failure: c.Relocate.FailureFile,
	}
}
