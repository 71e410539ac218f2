package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadMergedWithoutProfileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, filepath.Join(dir, "data", appName, "ranges.json"), cfg.TablePath)
	assert.Equal(t, defaultWorkers, cfg.Workers)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.BypassCloudflare)
}

func TestInitDefaultConfigActivatesProfile(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	assert.FileExists(t, path)

	active, err := ActiveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, path, active)

	again, err := InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)
	assert.Equal(t, path, again)
}

func TestLoadMergedAppliesProfileThenFlags(t *testing.T) {
	dir := isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	profile := DefaultConfig()
	profile.Workers = 8
	profile.TablePath = filepath.Join(dir, "profile.json")
	profile.LogFormat = "JSON"
	require.NoError(t, SaveYAML(profile, path))

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, profile.TablePath, cfg.TablePath)
	assert.Equal(t, "json", cfg.LogFormat)

	cfg, _, err = LoadMerged(Options{Workers: 2, TablePath: "flag.json", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "flag.json", cfg.TablePath)
	assert.True(t, cfg.Debug)

	cfg, used, err = LoadMerged(Options{IgnoreConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, defaultWorkers, cfg.Workers)
}

func TestLoadMergedRejectsInvalidSettings(t *testing.T) {
	isolate(t)

	_, _, err := LoadMerged(Options{SourceURL: "ftp://example.org/ranges.xml"})
	assert.ErrorContains(t, err, "source_url")

	_, _, err = LoadMerged(Options{Workers: maxWorkers + 1})
	assert.ErrorContains(t, err, "workers")

	_, _, err = LoadMerged(Options{LogFormat: "xml"})
	assert.ErrorContains(t, err, "log_format")
}

func TestListAndSwitchConfigs(t *testing.T) {
	isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, SaveYAML(DefaultConfig(), profilePath("mirror")))

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, DefaultLabel, list[0].Label)
	assert.True(t, list[0].Active)
	assert.Equal(t, "mirror", list[1].Label)
	assert.False(t, list[1].Active)

	require.NoError(t, SwitchConfig("mirror"))
	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "mirror", label)

	assert.Error(t, SwitchConfig("missing"))
	assert.Error(t, SwitchConfig(" "))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "ranges.json"), expandHome("~/ranges.json"))
	assert.Equal(t, "/abs/ranges.json", expandHome("/abs/ranges.json"))
	assert.Equal(t, "", expandHome(""))
}
