package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.toml")
	require.NoError(t, SaveEntries(path, testEntries()))

	loaded, err := LoadEntries(path)
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.Equal(t, "The Legend of Zelda", loaded[0].Name)
	assert.Equal(t, []string{"Adventure", "RPG"}, loaded[1].Genres)
	assert.True(t, loaded[0].Installed)
	assert.Equal(t, testEntries()[0].LastActivity, loaded[0].LastActivity.UTC())
}

func TestLoadEntriesRejectsNameless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[entry]]\nid = \"1\"\n"), 0o644))

	_, err := LoadEntries(path)
	assert.Error(t, err)
}

func TestLoadEntriesMissingFile(t *testing.T) {
	_, err := LoadEntries(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
