package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.yaml")
	content := `defaults:
  series:
    - jammy
    - noble
  pockets:
    - security
    - updates
packages:
  - name: nginx
  - name: openssl
    series:
      - focal
    pockets:
      - security
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	adapter := NewWatchlistFileAdapter()
	watchlist, err := adapter.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"jammy", "noble"}, watchlist.Defaults.Series)
	assert.Equal(t, []string{"security", "updates"}, watchlist.Defaults.Pockets)
	require.Len(t, watchlist.Packages, 2)
	assert.Equal(t, "nginx", watchlist.Packages[0].Name)
	assert.Nil(t, watchlist.Packages[0].Series)
	assert.Equal(t, "openssl", watchlist.Packages[1].Name)
	assert.Equal(t, []string{"focal"}, watchlist.Packages[1].Series)
	assert.Equal(t, []string{"security"}, watchlist.Packages[1].Pockets)
}

func TestWatchlistFileLoadMissing(t *testing.T) {
	adapter := NewWatchlistFileAdapter()
	_, err := adapter.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "watchlist file not found")
}

func TestWatchlistFileLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: [name: ["), 0644))

	adapter := NewWatchlistFileAdapter()
	_, err := adapter.Load(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to parse watchlist yaml")
}

func TestWatchlistFileLoadWrongShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: notalist\n"), 0644))

	adapter := NewWatchlistFileAdapter()
	_, err := adapter.Load(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
