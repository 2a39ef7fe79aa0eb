package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/sortnorris/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "_Index.txt", cfg.Relocate.IndexFile)
	assert.Equal(t, "_verify.sh", cfg.Relocate.VerifyScript)
	assert.Equal(t, "failure.txt", cfg.Relocate.FailureFile)
	assert.Equal(t, "sha256", cfg.Hash.Algorithm)
	assert.Equal(t, 4096, cfg.Hash.BufferSize)
	assert.Empty(t, cfg.Relocate.Exclude)
	assert.Equal(t, int64(0), cfg.BandwidthLimit())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	paths := cfg.AuditPaths()
	assert.Equal(t, "_Index.txt", paths.Index)
	assert.Equal(t, "failure.txt", paths.Failure)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"empty index file", func(c *Config) { c.Relocate.IndexFile = "" }, "relocate.index_file"},
		{"empty lock file", func(c *Config) { c.Relocate.LockFile = "" }, "relocate.lock_file"},
		{"bad timezone", func(c *Config) { c.Relocate.Timezone = "Mars/Olympus" }, "relocate.timezone"},
		{"bad algorithm", func(c *Config) { c.Hash.Algorithm = "crc32" }, "hash.algorithm"},
		{"small buffer", func(c *Config) { c.Hash.BufferSize = 10 }, "hash.buffer_size"},
		{"bad bandwidth", func(c *Config) { c.Hash.BandwidthLimit = "fast" }, "hash.bandwidth_limit"},
		{"bad output", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLocationUTC(t *testing.T) {
	cfg := Default()
	cfg.Relocate.Timezone = "UTC"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
relocate:
  timezone: UTC
  exclude:
    - ".git/"
    - "*.part"
hash:
  algorithm: md5
  bandwidth_limit: 10MB
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Relocate.Timezone)
	assert.Equal(t, []string{".git/", "*.part"}, cfg.Relocate.Exclude)
	assert.Equal(t, "md5", cfg.Hash.Algorithm)
	assert.Equal(t, int64(10_000_000), cfg.BandwidthLimit())
	assert.Equal(t, "json", cfg.Output.Format)
	// Defaults survive for absent keys
	assert.Equal(t, "_Index.txt", cfg.Relocate.IndexFile)
	assert.Equal(t, 4096, cfg.Hash.BufferSize)
}

func TestLoadFromFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[relocate]
index_file = "index.log"
exclude = ["@eaDir/"]

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "index.log", cfg.Relocate.IndexFile)
	assert.Equal(t, []string{"@eaDir/"}, cfg.Relocate.Exclude)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "sha256", cfg.Hash.Algorithm)
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("relocate: [unclosed"), 0644))
	_, err = LoadFromFile(broken)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[hash]\nalgorithm = \"crc32\"\n"), 0644))
	_, err = LoadFromFile(invalid)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	for _, name := range []string{"nested/config.yaml", "nested/config.toml"} {
		t.Run(filepath.Ext(name), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Relocate.Exclude = []string{"*.tmp"}
			cfg.Hash.Algorithm = "md5"

			require.NoError(t, SaveToFile(cfg, path))
			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSaveToFile_Invalid(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	err := SaveToFile(cfg, filepath.Join(t.TempDir(), "config.yaml"))
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "sortnorris", "config.yaml"), path)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
