package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
filter: "slow.*-slow.flaky"
shuffle: true
seed: 42
repeat: 3
print_time: false
break_on_failure: true
also_run_disabled: true
log_file: out.log
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "slow.*-slow.flaky", cfg.Filter)
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Repeat)
	require.NotNil(t, cfg.PrintTime)
	assert.False(t, *cfg.PrintTime)
	assert.True(t, cfg.BreakOnFailure)
	assert.True(t, cfg.AlsoRunDisabled)
	assert.Equal(t, "out.log", cfg.LogFile)

	opts := cfg.Options()
	assert.Equal(t, "slow.*-slow.flaky", opts.Filter)
	assert.True(t, opts.Shuffle)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 3, opts.Repeat)
	assert.True(t, opts.NoPrintTime)
	assert.True(t, opts.BreakOnFailure)
	assert.True(t, opts.AlsoRunDisabled)
}

func TestLoadEmptyConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Nil(t, cfg.PrintTime, "absent print_time stays distinguishable from false")
	opts := cfg.Options()
	assert.False(t, opts.NoPrintTime)
	assert.Equal(t, "", opts.Filter)
	assert.False(t, opts.Shuffle)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read config file")
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "filter: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse config file")
}

func TestLoadRejectsNegativeRepeat(t *testing.T) {
	_, err := Load(writeConfig(t, "repeat: -1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeat must not be negative")
}
