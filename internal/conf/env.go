// env.go - Environment variable configuration and validation for roamvid
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/tphakala/roamvid/internal/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ROAMVID"

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string             // Viper config key
	EnvVar    string             // Environment variable name
	Validate  func(string) error // Optional validation function
}

// getEnvBindings returns all environment variable bindings with validation
func getEnvBindings() []envBinding {
	return []envBinding{
		{"debug", "ROAMVID_DEBUG", validateEnvBool},
		{"root", "ROAMVID_ROOT", validateEnvPath},

		{"cleanup.freespace", "ROAMVID_CLEANUP_FREESPACE", validateEnvFreeSpace},
		{"cleanup.pretend", "ROAMVID_CLEANUP_PRETEND", validateEnvBool},

		{"naming.bucketwidth", "ROAMVID_NAMING_BUCKETWIDTH", validateEnvBucketWidth},
		{"naming.strictdot", "ROAMVID_NAMING_STRICTDOT", validateEnvBool},

		{"logging.level", "ROAMVID_LOGGING_LEVEL", validateEnvLogLevel},
		{"logging.file", "ROAMVID_LOGGING_FILE", validateEnvPath},

		{"output.format", "ROAMVID_OUTPUT_FORMAT", validateEnvFormat},
		{"metrics.file", "ROAMVID_METRICS_FILE", validateEnvPath},
	}
}

// bindEnvVars sets up environment variable bindings with validation (internal)
func bindEnvVars(v *viper.Viper, lookup func(string) (string, bool)) error {
	var problems []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			problems = append(problems, fmt.Sprintf("failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate == nil {
			continue
		}
		if value, ok := lookup(binding.EnvVar); ok && value != "" {
			if err := binding.Validate(value); err != nil {
				problems = append(problems, fmt.Sprintf("invalid %s value '%s': %v", binding.EnvVar, value, err))
			}
		}
	}

	if len(problems) > 0 {
		return errors.Newf("environment variable issues:\n  - %s", strings.Join(problems, "\n  - ")).
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

// Environment variable validation functions

func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Errorf("must be true or false")
	}
	return nil
}

func validateEnvFreeSpace(value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("must be a whole number of GiB")
	}
	return validateFreeSpace(n)
}

func validateEnvBucketWidth(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	return validateBucketWidth(n)
}

func validateEnvLogLevel(value string) error {
	if !slices.Contains(validLogLevels, strings.ToLower(value)) {
		return fmt.Errorf("must be one of %s", strings.Join(validLogLevels, ", "))
	}
	return nil
}

func validateEnvFormat(value string) error {
	return validateOutputFormat(value)
}

// validateEnvPath rejects paths that try to climb out of their base.
func validateEnvPath(value string) error {
	cleaned := filepath.Clean(value)
	if !filepath.IsAbs(cleaned) && strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("relative path must not start with '..'")
	}
	return nil
}

// configureEnvironmentVariables sets up environment variable support for Viper
func configureEnvironmentVariables(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return bindEnvVars(v, os.LookupEnv)
}
