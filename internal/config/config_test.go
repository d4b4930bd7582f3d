package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-composer/internal/compose"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "composer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, compose.DefaultConfig(), cfg.Compose())
}

func TestLoad_FileKeepsUnsetDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
prefix: gen
report_unresolved: true
raw_types: [String, MyRaw]
`))
	require.NoError(t, err)

	assert.Equal(t, "gen", cfg.Prefix)
	assert.True(t, cfg.ReportUnresolved)
	assert.Equal(t, 3, cfg.MaxSuggestions)

	cc := cfg.Compose()
	assert.Equal(t, "gen", cc.Prefix)
	assert.Equal(t, []string{"String", "MyRaw"}, cc.RawRepresentableTypes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvPrefix, "env")
	t.Setenv(EnvJobs, "2")
	t.Setenv(EnvCacheDir, "/tmp/composer-cache")
	t.Setenv(EnvReportUnresolved, "true")

	cfg, err := Load(writeConfig(t, "prefix: file\njobs: 8\n"))
	require.NoError(t, err)

	assert.Equal(t, "env", cfg.Prefix)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "/tmp/composer-cache", cfg.CacheDir)
	assert.True(t, cfg.ReportUnresolved)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad jobs env", env: map[string]string{EnvJobs: "many"}},
		{name: "bad bool env", env: map[string]string{EnvReportUnresolved: "maybe"}},
		{name: "negative jobs", file: "jobs: -1\n"},
		{name: "empty prefix", file: "prefix: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
