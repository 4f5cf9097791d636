package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("module", nil, "")
	fs.String("marker", "", "")
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("log-format", DefaultLogFormat, "")
	fs.StringP("output", "o", DefaultOutput, "")
	fs.Bool("dump", false, "")
	require.NoError(t, fs.Parse(args))

	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "typeprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Modules)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Dump)
	assert.Empty(t, cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfig(t, dir, `
modules: [fsmodel]
marker: Entry
log_level: info
output: json
dump: true
`)

	t.Run("file", func(t *testing.T) {
		cfg, err := Load("", testFlags(t))
		require.NoError(t, err)

		assert.Equal(t, "typeprobe.yaml", cfg.File)
		assert.Equal(t, []string{"fsmodel"}, cfg.Modules)
		assert.Equal(t, "Entry", cfg.Marker)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, OutputJSON, cfg.Output)
		assert.True(t, cfg.Dump)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("TYPEPROBE_LOG_LEVEL", "debug")
		t.Setenv("TYPEPROBE_MODULES", "a.so, b.so")

		cfg, err := Load("", testFlags(t))
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, []string{"a.so", "b.so"}, cfg.Modules)
		assert.Equal(t, OutputJSON, cfg.Output)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("TYPEPROBE_LOG_LEVEL", "debug")

		cfg, err := Load("", testFlags(t, "--log-level", "error", "--module", "x.so", "--module", "y.so"))
		require.NoError(t, err)

		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, []string{"x.so", "y.so"}, cfg.Modules)
		assert.Equal(t, OutputJSON, cfg.Output, "unset flags keep lower layers")
	})
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeConfig(t, t.TempDir(), "marker: Card\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "Card", cfg.Marker)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{name: "valid", cfg: Config{LogLevel: "debug", LogFormat: "json", Output: "text"}},
		{name: "bad level", cfg: Config{LogLevel: "loud", LogFormat: "text", Output: "text"}, errSubstr: "invalid log_level"},
		{name: "bad format", cfg: Config{LogLevel: "info", LogFormat: "xml", Output: "text"}, errSubstr: "invalid log_format"},
		{name: "bad output", cfg: Config{LogLevel: "info", LogFormat: "text", Output: "csv"}, errSubstr: "invalid output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Config{LogLevel: "info", LogFormat: "json"}
	log := cfg.NewLogger(&buf)

	log.Debug("hidden")
	log.Info("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultOutput, FromContext(ctx).Output)
	assert.NotNil(t, GetLogger(ctx))

	cfg := &Config{Output: OutputJSON}
	assert.Same(t, cfg, FromContext(WithConfig(ctx, cfg)))
}
