package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("log-level", "info", "")
	fs.Int("threads", 0, "")
	fs.Int("resolution", 9, "")
	fs.StringSlice("props", nil, "")
	fs.StringArray("in", nil, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Greater(t, cfg.Threads, 0)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, lvl)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HEXGRID_LOG_LEVEL", "debug")
	t.Setenv("HEXGRID_RESOLUTION", "5")
	t.Setenv("HEXGRID_PROPS", "a,b")

	fs := newFlags()
	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	res, err := fs.GetInt("resolution")
	require.NoError(t, err)
	assert.Equal(t, 5, res)

	list, err := fs.GetStringSlice("props")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)
}

func TestFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("HEXGRID_RESOLUTION", "5")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--resolution", "11"}))
	_, err := Load(fs)
	require.NoError(t, err)

	res, err := fs.GetInt("resolution")
	require.NoError(t, err)
	assert.Equal(t, 11, res)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolution: 3\nthreads: 2\n"), 0o644))

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--config", path}))
	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Threads)

	res, err := fs.GetInt("resolution")
	require.NoError(t, err)
	assert.Equal(t, 3, res)

	t.Setenv("HEXGRID_CONFIG", path)
	fs = newFlags()
	_, err = Load(fs)
	require.NoError(t, err)
	res, err = fs.GetInt("resolution")
	require.NoError(t, err)
	assert.Equal(t, 3, res)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("colour: red\n"), 0o644))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"MissingFile", []string{"--config", filepath.Join(dir, "nope.yaml")}, nil},
		{"UnknownKey", []string{"--config", unknown}, nil},
		{"BadLevel", nil, map[string]string{"HEXGRID_LOG_LEVEL": "loud"}},
		{"BadInt", nil, map[string]string{"HEXGRID_RESOLUTION": "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := newFlags()
			require.NoError(t, fs.Parse(tt.args))
			_, err := Load(fs)
			assert.Error(t, err)
		})
	}
}

func TestApplyIgnoresUnsetValues(t *testing.T) {
	fs := newFlags()
	require.NoError(t, Apply(viper.New(), fs, ""))
	assert.False(t, fs.Lookup("resolution").Changed)

	in, err := fs.GetStringArray("in")
	require.NoError(t, err)
	assert.Empty(t, in)
}
