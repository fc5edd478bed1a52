// conf/config.go layered configuration for roamvid
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/logger"
	"github.com/tphakala/roamvid/internal/videoname"
)

// Settings contains all configuration options for roamvid.
type Settings struct {
	Debug bool `yaml:"debug"` // true to log at debug level regardless of logging.level

	// Root is the directory holding the organized video tree.
	Root string `yaml:"root"`

	Cleanup CleanupSettings `yaml:"cleanup"`
	Naming  NamingSettings  `yaml:"naming"`
	Logging LogSettings     `yaml:"logging"`
	Output  OutputSettings  `yaml:"output"`
	Metrics MetricsSettings `yaml:"metrics"`
}

// CleanupSettings controls the space reclaimer.
type CleanupSettings struct {
	FreeSpace int64 `yaml:"freespace"` // free space target in GiB
	Pretend   bool  `yaml:"pretend"`   // report removals without touching files
}

// NamingSettings controls how recordings are recognised and bucketed.
type NamingSettings struct {
	BucketWidth int  `yaml:"bucketwidth"` // recordings per bucket directory, must divide 10000
	StrictDot   bool `yaml:"strictdot"`   // require a literal dot before the extension
}

// LogSettings controls log output.
type LogSettings struct {
	Level string `yaml:"level"` // trace, debug, info, warn or error
	File  string `yaml:"file"`  // optional JSON log file
}

// OutputSettings controls how command results are printed.
type OutputSettings struct {
	Format string `yaml:"format"` // text, yaml or json
}

// MetricsSettings controls the Prometheus textfile export.
type MetricsSettings struct {
	File string `yaml:"file"` // empty disables export
}

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ConfigFileName is the base name searched for in the default config paths.
const ConfigFileName = "config.yaml"

// Load reads defaults, the configuration file, environment variables and any
// flags already bound to v into a validated Settings. A config file named
// with v.SetConfigFile must exist; otherwise a missing file is not an error.
// The configuration is never written back.
func Load(v *viper.Viper) (*Settings, error) {
	if err := initViper(v); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal-config").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryValidation).
			Context("operation", "validate-config").
			Build()
	}

	return settings, nil
}

// initViper sets defaults, environment bindings and reads the config file.
func initViper(v *viper.Viper) error {
	setDefaultConfig(v)

	if err := configureEnvironmentVariables(v); err != nil {
		return errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "bind-env").
			Build()
	}

	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		configPaths, err := GetDefaultConfigPaths()
		if err != nil {
			return err
		}
		for _, path := range configPaths {
			v.AddConfigPath(path)
		}
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return errors.New(err).
		Category(errors.CategoryConfiguration).
		Context("operation", "read-config").
		Context("config_file", v.ConfigFileUsed()).
		Build()
}

// GetDefaultConfigPaths returns the directories searched for config.yaml, in order.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	if runtime.GOOS == "windows" {
		return []string{filepath.Join(homeDir, "AppData", "Roaming", "roamvid")}, nil
	}
	return []string{
		filepath.Join(homeDir, ".config", "roamvid"),
		"/etc/roamvid",
	}, nil
}

// NamingConfig returns the recording name configuration.
func (s *Settings) NamingConfig() videoname.Config {
	return videoname.Config{
		BucketWidth: s.Naming.BucketWidth,
		StrictDot:   s.Naming.StrictDot,
	}
}

// LoggingConfig returns the logger configuration. Debug overrides the level.
func (s *Settings) LoggingConfig() *logger.LoggingConfig {
	level := s.Logging.Level
	if s.Debug {
		level = string(logger.LogLevelDebug)
	}

	cfg := &logger.LoggingConfig{
		DefaultLevel: level,
		Console: &logger.ConsoleOutput{
			Enabled: true,
			Level:   level,
		},
	}
	if s.Logging.File != "" {
		cfg.FileOutput = &logger.FileOutput{
			Enabled: true,
			Path:    s.Logging.File,
			Level:   level,
		}
	}
	return cfg
}
