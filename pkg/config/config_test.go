package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seedmock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, IDFormatUUID, cfg.ID.Format)
	assert.Equal(t, []string{"id", "uuid", "key"}, cfg.ID.FieldPatterns)
	assert.True(t, cfg.Pagination.Cache)
	assert.Equal(t, 30*time.Minute, cfg.Pagination.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Cursor.CursorTTL)
	assert.InDelta(t, 0.5, cfg.Synth.OpenAPIOmitRate, 0)
	assert.Equal(t, 3, cfg.Synth.ProtoMaxDepth)
}

func TestDefault_ReturnsIndependentSlices(t *testing.T) {
	a := Default()
	a.ID.FieldPatterns[0] = "changed"
	assert.Equal(t, "id", Default().ID.FieldPatterns[0])
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
id:
  format: sequential
  prefix: "id-"
  fieldOverrides:
    orderId: ulid
pagination:
  cacheTTL: 5m
  defaultLimit: 25
cursor:
  enableExpiry: false
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, IDFormatSequential, cfg.ID.Format)
	assert.Equal(t, "id-", cfg.ID.Prefix)
	assert.Equal(t, IDFormatULID, cfg.ID.FieldOverrides["orderId"])
	assert.Equal(t, 5*time.Minute, cfg.Pagination.CacheTTL)
	assert.Equal(t, 25, cfg.Pagination.DefaultLimit)
	assert.False(t, cfg.Cursor.EnableExpiry)

	// untouched sections keep defaults
	assert.True(t, cfg.Pagination.Cache)
	assert.Equal(t, DefaultTotal, cfg.Pagination.DefaultTotal)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = LoadFile(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = LoadFile(writeConfig(t, "id: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidYAML)

	_, err = LoadFile(writeConfig(t, "id:\n  format: snowflake\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "id:\n  format: sequential\n")
	t.Setenv("SEEDMOCK_ID_FORMAT", "nanoid")
	t.Setenv("SEEDMOCK_PAGINATION_CACHE_TTL", "90s")
	t.Setenv("SEEDMOCK_SYNTH_MODEL_OMIT_RATE", "0.1")
	t.Setenv("SEEDMOCK_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, IDFormatNanoID, cfg.ID.Format)
	assert.Equal(t, 90*time.Second, cfg.Pagination.CacheTTL)
	assert.InDelta(t, 0.1, cfg.Synth.ModelOmitRate, 1e-9)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Cursor, cfg.Cursor)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`{"synth": {"openapiOmitRate": 0}}`))
	require.NoError(t, err)
	assert.Zero(t, cfg.Synth.OpenAPIOmitRate)
	assert.Equal(t, 0.3, cfg.Synth.ModelOmitRate)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"omit rate above one", func(c *Config) { c.Synth.OpenAPIOmitRate = 1.5 }},
		{"negative ttl", func(c *Config) { c.Pagination.CacheTTL = -time.Second }},
		{"bad override", func(c *Config) { c.ID.FieldOverrides = map[string]IDFormat{"id": "uuidv9"} }},
		{"array bounds inverted", func(c *Config) { c.Synth.ArrayMin = 4; c.Synth.ArrayMax = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
