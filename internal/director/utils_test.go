package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDumpPath(t *testing.T) {
	path := GenerateDumpPath("out", "resolved")

	assert.Equal(t, "out", filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "resolved_"), path)
	assert.Equal(t, ".yaml", filepath.Ext(path))
}

func TestFindLatestDeck(t *testing.T) {
	dir := t.TempDir()

	files := []string{"old.yaml", "newest.yml", "middle.yaml", "notes.txt"}
	now := time.Now()
	for i, name := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0644))
		age := map[int]time.Duration{0: 3 * time.Hour, 1: time.Minute, 2: time.Hour, 3: 0}[i]
		require.NoError(t, os.Chtimes(path, now.Add(-age), now.Add(-age)))
	}

	latest, err := FindLatestDeck(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "newest.yml"), latest)

	resolved, err := ResolveDeckPath(dir)
	require.NoError(t, err)
	assert.Equal(t, latest, resolved)

	direct := filepath.Join(dir, "old.yaml")
	resolved, err = ResolveDeckPath(direct)
	require.NoError(t, err)
	assert.Equal(t, direct, resolved)
}

func TestFindLatestDeckEmpty(t *testing.T) {
	_, err := FindLatestDeck(t.TempDir())
	assert.Error(t, err)

	_, err = FindLatestDeck(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
