package display

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tphakala/roamvid/internal/errors"
)

// WriteStructured encodes v to w as "yaml" or "json".
func WriteStructured(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return encodeError(err, format)
		}
		if err := enc.Close(); err != nil {
			return encodeError(err, format)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return encodeError(err, format)
		}
		return nil
	default:
		return errors.Newf("unsupported output format %q", format).
			Category(errors.CategoryValidation).
			Build()
	}
}

func encodeError(err error, format string) error {
	return errors.New(err).
		Category(errors.CategoryFileIO).
		Context("operation", "encode-output").
		Context("format", format).
		Build()
}
