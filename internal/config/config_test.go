package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".validate-commit.yaml", `
structures:
  - Plan
  - Entry
proper_nouns:
  - Amazon
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plan", "Entry"}, cfg.Structures)
	assert.Equal(t, []string{"Amazon"}, cfg.ProperNouns)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".validate-commit.toml", `
structures = ["Plan", "PackType"]
proper_nouns = ["FNSKU"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plan", "PackType"}, cfg.Structures)
	assert.Equal(t, []string{"FNSKU"}, cfg.ProperNouns)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, dir, "config.json", `{}`))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = Load(writeFile(t, dir, "bad.yaml", "structures: [unclosed"))
	assert.ErrorContains(t, err, "parsing YAML config")

	_, err = Load(writeFile(t, dir, "bad.toml", "structures = "))
	assert.ErrorContains(t, err, "parsing TOML config")
}

func TestDiscover(t *testing.T) {
	t.Run("missing file gives empty config", func(t *testing.T) {
		cfg, err := Discover(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.Structures)
		assert.Empty(t, cfg.Path)
	})

	t.Run("yaml wins over toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".validate-commit.toml", `structures = ["FromTOML"]`)
		writeFile(t, dir, ".validate-commit.yaml", "structures: [FromYAML]\n")

		cfg, err := Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"FromYAML"}, cfg.Structures)
	})

	t.Run("toml alone", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".validate-commit.toml", `structures = ["FromTOML"]`)

		cfg, err := Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"FromTOML"}, cfg.Structures)
	})
}

func TestMergeAndOptions(t *testing.T) {
	cfg := &Config{Structures: []string{"Plan"}, ProperNouns: []string{"Amazon"}}
	cfg.Merge([]string{"Entry", "Plan", " "}, []string{"CSV"})

	assert.Equal(t, []string{"Entry", "Plan"}, cfg.Structures)
	assert.Equal(t, []string{"Amazon", "CSV"}, cfg.ProperNouns)

	opts := cfg.Options()
	assert.Equal(t, cfg.Structures, opts.StructureNames)
	assert.Equal(t, cfg.ProperNouns, opts.ProperNouns)
}
