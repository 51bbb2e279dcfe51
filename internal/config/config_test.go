package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for configuration:
// - Defaults select JSON output and no extra exclusions
// - A directory without a config file loads the defaults
// - A valid .mcpscan.yml overrides scan and output settings
// - The home directory config is used when the scanned dir has none
// - LoadFromFile requires the file to exist
// - A malformed config file is an error
// - A config with an unknown output format is rejected
// - Validate rejects empty exclude_dirs entries and bad extension maps

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Empty(t, cfg.Scan.ExcludeDirs)
	assert.Empty(t, cfg.Scan.Ignore)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromDir_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromDir_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte("output:\n  format: list\n"), 0o644))

	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "list", cfg.Output.Format)
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadFromFile_Explicit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: table\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestLoadFromDir_ValidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
scan:
  exclude_dirs:
    - vendor
    - generated
  ignore:
    - "**_test.py"
  extensions:
    .tsx: typescript
output:
  format: table
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"vendor", "generated"}, cfg.Scan.ExcludeDirs)
	assert.Equal(t, []string{"**_test.py"}, cfg.Scan.Ignore)
	assert.Equal(t, map[string]string{".tsx": "typescript"}, cfg.Scan.Extensions)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestLoadFromDir_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("scan: [unclosed"), 0o644))

	_, err := LoadFromDir(dir)
	assert.Error(t, err)
}

func TestLoadFromDir_UnknownFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("output:\n  format: yaml\n"), 0o644))

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestValidate_EmptyExcludeDir(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Scan.ExcludeDirs = []string{"vendor", ""}
	assert.Error(t, cfg.Validate())
}

func TestValidate_Extensions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Scan.Extensions = map[string]string{".tsx": "typescript", ".pyi": "python"}
	assert.NoError(t, cfg.Validate())

	cfg.Scan.Extensions = map[string]string{"tsx": "typescript"}
	assert.Error(t, cfg.Validate(), "missing leading dot")

	cfg.Scan.Extensions = map[string]string{".rb": "ruby"}
	assert.Error(t, cfg.Validate(), "unsupported language")
}
