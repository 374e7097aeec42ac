package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/nebula-docs/internal/content"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestNavTreeListsEveryPage(t *testing.T) {
	store := content.Default()
	rendered := navTree("Nebula UI", store.NavigationTree()).String()

	assert.Contains(t, rendered, "Nebula UI")
	for _, p := range store.Pages() {
		assert.Contains(t, rendered, p.Title)
		assert.Contains(t, rendered, p.Slug)
	}
	assert.Contains(t, rendered, "Core Concepts")
}

func TestNavCommand(t *testing.T) {
	out := run(t, "nav")
	assert.Contains(t, out, "core-concepts/facilitator")
}

func TestVersionCommand(t *testing.T) {
	Version = "1.2.3"
	t.Cleanup(func() { Version = "dev" })
	assert.Equal(t, "nebuladocs 1.2.3\n", run(t, "version"))
}

func TestThemeCommandPersists(t *testing.T) {
	t.Setenv("NEBULADOCS_PREFERENCES__BACKEND", "sqlite")
	t.Setenv("NEBULADOCS_DATA_DIR", t.TempDir())
	t.Setenv("NEBULADOCS_PREFERENCES__CACHE_TTL", "0s")

	assert.Equal(t, "dark\n", run(t, "theme", "dark"))
	assert.Equal(t, "dark\n", run(t, "theme"))
	assert.Equal(t, "light\n", run(t, "theme", "toggle"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NEBULADOCS_TEST_KEY=from-file\nNEBULADOCS_TEST_SET=from-file\n"), 0o600))

	t.Setenv("NEBULADOCS_TEST_SET", "from-env")
	t.Setenv("NEBULADOCS_TEST_KEY", "")
	os.Unsetenv("NEBULADOCS_TEST_KEY")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("NEBULADOCS_TEST_KEY"))
	assert.Equal(t, "from-env", os.Getenv("NEBULADOCS_TEST_SET"))

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { os.Unsetenv("NEBULADOCS_TEST_KEY") })
}
