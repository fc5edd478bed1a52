package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roamvid/internal/errors"
)

// isolateHome points the default config search at an empty directory.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.False(t, settings.Debug)
	assert.Equal(t, ".", settings.Root)
	assert.Equal(t, int64(0), settings.Cleanup.FreeSpace)
	assert.False(t, settings.Cleanup.Pretend)
	assert.Equal(t, 100, settings.Naming.BucketWidth)
	assert.False(t, settings.Naming.StrictDot)
	assert.Equal(t, "info", settings.Logging.Level)
	assert.Equal(t, FormatText, settings.Output.Format)
	assert.Empty(t, settings.Metrics.File)
}

func TestLoadFromHomeConfig(t *testing.T) {
	home := isolateHome(t)
	writeConfig(t, filepath.Join(home, ".config", "roamvid"), `
root: /media/roam
cleanup:
  freespace: 12
naming:
  bucketwidth: 50
  strictdot: true
output:
  format: yaml
`)

	settings, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/media/roam", settings.Root)
	assert.Equal(t, int64(12), settings.Cleanup.FreeSpace)
	assert.Equal(t, 50, settings.Naming.BucketWidth)
	assert.True(t, settings.Naming.StrictDot)
	assert.Equal(t, FormatYAML, settings.Output.Format)
}

func TestLoadDoesNotWriteConfig(t *testing.T) {
	home := isolateHome(t)

	_, err := Load(viper.New())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".config", "roamvid"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), "cleanup:\n  freespace: 3\n  pretend: true\n")

	v := viper.New()
	v.SetConfigFile(path)
	settings, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, int64(3), settings.Cleanup.FreeSpace)
	assert.True(t, settings.Cleanup.Pretend)
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	isolateHome(t)

	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
}

func TestLoadMalformedConfig(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), "cleanup: [unterminated\n")

	v := viper.New()
	v.SetConfigFile(path)
	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), "cleanup:\n  freespace: 3\n")
	t.Setenv("ROAMVID_CLEANUP_FREESPACE", "7")
	t.Setenv("ROAMVID_NAMING_STRICTDOT", "true")
	t.Setenv("ROAMVID_ROOT", "/videos")

	v := viper.New()
	v.SetConfigFile(path)
	settings, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, int64(7), settings.Cleanup.FreeSpace)
	assert.True(t, settings.Naming.StrictDot)
	assert.Equal(t, "/videos", settings.Root)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative free space", "ROAMVID_CLEANUP_FREESPACE", "-1"},
		{"bucket width not dividing", "ROAMVID_NAMING_BUCKETWIDTH", "30"},
		{"bad bool", "ROAMVID_CLEANUP_PRETEND", "maybe"},
		{"bad level", "ROAMVID_LOGGING_LEVEL", "loud"},
		{"bad format", "ROAMVID_OUTPUT_FORMAT", "xml"},
		{"escaping path", "ROAMVID_ROOT", "../../etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	isolateHome(t)
	t.Setenv("ROAMVID_CLEANUP_FREESPACE", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int64("free-space", 0, "")
	require.NoError(t, flags.Parse([]string{"--free-space=9"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag("cleanup.freespace", flags.Lookup("free-space")))

	settings, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, int64(9), settings.Cleanup.FreeSpace)
}

func TestLoadValidationFailure(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), "naming:\n  bucketwidth: 0\noutput:\n  format: csv\n")

	v := viper.New()
	v.SetConfigFile(path)
	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	valid := func() *Settings {
		return &Settings{
			Root:    "/videos",
			Naming:  NamingSettings{BucketWidth: 100},
			Logging: LogSettings{Level: "info"},
			Output:  OutputSettings{Format: FormatJSON},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"valid", func(*Settings) {}, false},
		{"width 10", func(s *Settings) { s.Naming.BucketWidth = 10 }, false},
		{"width 10000", func(s *Settings) { s.Naming.BucketWidth = 10000 }, false},
		{"width 10001", func(s *Settings) { s.Naming.BucketWidth = 10001 }, true},
		{"width 300", func(s *Settings) { s.Naming.BucketWidth = 300 }, true},
		{"negative free space", func(s *Settings) { s.Cleanup.FreeSpace = -2 }, true},
		{"empty root", func(s *Settings) { s.Root = " " }, true},
		{"upper case level", func(s *Settings) { s.Logging.Level = "DEBUG" }, false},
		{"unknown level", func(s *Settings) { s.Logging.Level = "verbose" }, true},
		{"unknown format", func(s *Settings) { s.Output.Format = "toml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := valid()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFreeSpace(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateFreeSpace(0))
	require.NoError(t, validateFreeSpace(1<<40))

	err := validateFreeSpace(-1)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "got -1")
}

func TestLoggingConfig(t *testing.T) {
	t.Parallel()

	s := &Settings{Logging: LogSettings{Level: "warn"}}
	cfg := s.LoggingConfig()
	assert.Equal(t, "warn", cfg.DefaultLevel)
	require.NotNil(t, cfg.Console)
	assert.True(t, cfg.Console.Enabled)
	assert.Nil(t, cfg.FileOutput)

	s.Debug = true
	s.Logging.File = "/var/log/roamvid.log"
	cfg = s.LoggingConfig()
	assert.Equal(t, "debug", cfg.DefaultLevel)
	require.NotNil(t, cfg.FileOutput)
	assert.Equal(t, "/var/log/roamvid.log", cfg.FileOutput.Path)
}

func TestNamingConfig(t *testing.T) {
	t.Parallel()

	s := &Settings{Naming: NamingSettings{BucketWidth: 20, StrictDot: true}}
	cfg := s.NamingConfig()
	assert.Equal(t, 20, cfg.BucketWidth)
	assert.True(t, cfg.StrictDot)
	assert.NoError(t, cfg.Validate())
}
