package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TAXPILOT_CONFIG", "")
	t.Chdir(t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local", "share", "taxpilot", "taxpilot.db"), s.Database.Path)
	assert.Equal(t, "info", s.Log.Level)
	assert.False(t, s.Log.JSON)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, []string{"http://localhost:8081"}, s.Server.AllowedOrigins)
	assert.False(t, s.Calculation.ApplyChildTaxCredit)
	assert.Empty(t, s.Jurisdiction.TablePath)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	path := writeFile(t, "config.yaml", `
database:
  path: /tmp/drafts.db
log:
  level: debug
  json: true
calculation:
  apply_child_tax_credit: true
`)
	t.Setenv("TAXPILOT_CONFIG", path)
	t.Setenv("TAXPILOT_LOG_LEVEL", "warn")
	t.Setenv("TAXPILOT_SERVER_ADDR", "127.0.0.1:9090")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/drafts.db", s.Database.Path)
	assert.Equal(t, "warn", s.Log.Level, "env overrides file")
	assert.True(t, s.Log.JSON)
	assert.Equal(t, "127.0.0.1:9090", s.Server.Addr)
	assert.True(t, s.Calculation.ApplyChildTaxCredit)
}

func TestLoadSettings_DotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TAXPILOT_CONFIG", "")
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TAXPILOT_JURISDICTION_TABLE_PATH=/etc/taxpilot/table.yaml\nTAXPILOT_SERVER_ADDR=:1234\n"), 0o600))

	// registered so the variable is restored after godotenv sets it
	t.Setenv("TAXPILOT_JURISDICTION_TABLE_PATH", "")
	require.NoError(t, os.Unsetenv("TAXPILOT_JURISDICTION_TABLE_PATH"))
	t.Setenv("TAXPILOT_SERVER_ADDR", ":7777")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/etc/taxpilot/table.yaml", s.Jurisdiction.TablePath)
	assert.Equal(t, ":7777", s.Server.Addr, "variables already set win over .env")
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("TAXPILOT_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadSettings()
	assert.Error(t, err)
}
