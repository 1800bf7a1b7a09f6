package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout())
	assert.Equal(t, int64(5*1024*1024), cfg.SizeCap())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packager.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"site: https://www.example.com\noutput_dir: /tmp/out\nfetch:\n  timeout_seconds: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.com", cfg.Site)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	// unset fields still defaulted
	assert.Equal(t, 5*time.Second, cfg.DialTimeout())
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packager.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
