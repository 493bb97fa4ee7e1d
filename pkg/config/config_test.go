package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.55, cfg.Search.Threshold, 1e-9)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.Equal(t, 100, cfg.Search.AsyncDelayMs)
	assert.True(t, cfg.Search.InstallStatusFirst)
	assert.Equal(t, "r:", cfg.Library.RecentPrefix)
}

func TestParamsConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.AsyncDelayMs = 250
	cfg.Search.MaxResults = 5

	p := cfg.Params()
	assert.Equal(t, 250*time.Millisecond, p.AsyncDelay)
	assert.Equal(t, 5, p.MaxResults)
	assert.InDelta(t, cfg.Search.Threshold, p.Threshold, 1e-9)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Search.MaxResults = 42
	cfg.Library.RecentPrefix = "recent:"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Search.MaxResults)
	assert.Equal(t, "recent:", loaded.Library.RecentPrefix)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// threshold has the wrong type, which fails the strict decode; the
	// recovery pass keeps the well-typed keys and defaults the rest.
	broken := `
[search]
max_results = 7
threshold = "high"
`
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.MaxResults)
	assert.InDelta(t, DefaultConfig().Search.Threshold, cfg.Search.Threshold, 1e-9)
}

func TestUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	require.NoError(t, SaveConfig(cfg, path))

	threshold := 0.7
	maxResults := 9
	require.NoError(t, cfg.Update(path, &threshold, &maxResults, nil, nil))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, loaded.Search.Threshold, 1e-9)
	assert.Equal(t, 9, loaded.Search.MaxResults)
}
