// conf/validate.go

package conf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/videoname"
)

var (
	validLogLevels = []string{"trace", "debug", "info", "warn", "error"}
	validFormats   = []string{FormatText, FormatYAML, FormatJSON}
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if strings.TrimSpace(settings.Root) == "" {
		ve.Errors = append(ve.Errors, "root must not be empty")
	}

	if err := validateFreeSpace(settings.Cleanup.FreeSpace); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateBucketWidth(settings.Naming.BucketWidth); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if !slices.Contains(validLogLevels, strings.ToLower(settings.Logging.Level)) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("invalid logging level %q", settings.Logging.Level))
	}

	if err := validateOutputFormat(settings.Output.Format); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateFreeSpace(gib int64) error {
	if gib < 0 {
		return errors.ValidationError(fmt.Sprintf("cleanup free space must not be negative, got %d", gib))
	}
	return nil
}

func validateBucketWidth(width int) error {
	cfg := videoname.Config{BucketWidth: width}
	return cfg.Validate()
}

func validateOutputFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return fmt.Errorf("invalid output format %q, must be one of %s", format, strings.Join(validFormats, ", "))
	}
	return nil
}
