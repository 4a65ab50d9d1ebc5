package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, "all", c.DefaultFormat)
	assert.True(t, c.PageNumbers)
	assert.Equal(t, "EDA-Desk PRO", c.Product)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Set("product", "Acme EDA"))
	require.NoError(t, c.Set("page_numbers", "false"))
	require.NoError(t, c.Set("default_format", "PDF"))
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme EDA", got.Product)
	assert.False(t, got.PageNumbers)
	assert.Equal(t, "pdf", got.DefaultFormat)
}

func TestSaveReplacesFileAtomically(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Save(c, path))
	require.NoError(t, c.Set("title", "Second"))
	require.NoError(t, Save(c, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EDAEXPORT_OUTPUT_DIR", "/tmp/reports")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports", c.OutputDir)
}

func TestSetRejectsBadValues(t *testing.T) {
	c := &Global{}
	assert.Error(t, c.Set("default_format", "odt"))
	assert.Error(t, c.Set("page_numbers", "maybe"))
	assert.Error(t, c.Set("api_key", "x"))

	for _, k := range Keys {
		_, err := c.Get(k)
		assert.NoError(t, err, k)
	}
	_, err := c.Get("nope")
	assert.Error(t, err)
}
