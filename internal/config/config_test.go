package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schema-dl/schemadl/internal/config"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Config{}, cfg)
}

func TestLoadDecodesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	body := `
namespace = "game"
output_basename = "game_schema"
strong_entity_id = true
entity_id_typedef = "uint32_t"
indentation_size = 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.Namespace)
	assert.True(t, cfg.StrongEntityID)

	opts := cfg.Options()
	assert.Equal(t, "game", opts.NamespaceName)
	assert.Equal(t, "game_schema", opts.OutputBasename)
	assert.Equal(t, "uint32_t", opts.EntityIDTypedef)
	assert.Equal(t, 2, opts.IndentationSize)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
