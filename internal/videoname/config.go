// Package videoname classifies ContourROAM recording file names and computes
// their organized destination paths.
//
// The camera names the first file of a recording FILEnnnn.MOV. Recordings longer
// than the camera's split limit continue in FIccnnnn.MOV where cc is a two-digit
// continuation index starting at 01. Organized trees keep files in 100-wide
// buckets ("1200-1299") and rename continuations to FILEnnnn-c.MOV.
package videoname

import (
	"fmt"
	"regexp"

	"github.com/tphakala/roamvid/internal/errors"
)

const (
	// DefaultBucketWidth is the number of recording numbers per bucket directory.
	DefaultBucketWidth = 100

	// PrimaryMarker completes the "FI" prefix of a first-segment file name.
	PrimaryMarker = "LE"

	// maxRecordingNumber is the exclusive upper bound of a 4-digit recording number.
	maxRecordingNumber = 10000
)

// Patterns for recognised files. The dot before the extension is left
// unescaped in the loose pattern: it matches any single character, which is
// what existing organized trees were built with.
const (
	loosePattern  = `^FI(LE|[0-9]{2})([0-9]{4})(-[0-9])?.(THM|MOV|MOV\.times)$`
	strictPattern = `^FI(LE|[0-9]{2})([0-9]{4})(-[0-9])?\.(THM|MOV|MOV\.times)$`

	// BucketPattern matches organized bucket directory names.
	BucketPattern = `^[0-9]{4}-[0-9]{4}$`
)

var bucketRE = regexp.MustCompile(BucketPattern)

// Config holds the naming rules used by a Namer.
type Config struct {
	// BucketWidth is the width of each bucket range; must divide 10000.
	BucketWidth int
	// StrictDot requires a literal dot before the extension.
	StrictDot bool
}

// DefaultConfig returns the naming rules used by the camera tooling.
func DefaultConfig() Config {
	return Config{BucketWidth: DefaultBucketWidth}
}

// Validate checks that the configuration yields well-formed bucket names.
func (c Config) Validate() error {
	if c.BucketWidth < 1 || c.BucketWidth > maxRecordingNumber {
		return errors.Newf("invalid bucket width %d: must be between 1 and %d", c.BucketWidth, maxRecordingNumber).
			Category(errors.CategoryValidation).
			Context("bucket_width", c.BucketWidth).
			Build()
	}
	if maxRecordingNumber%c.BucketWidth != 0 {
		return errors.Newf("invalid bucket width %d: must divide %d", c.BucketWidth, maxRecordingNumber).
			Category(errors.CategoryValidation).
			Context("bucket_width", c.BucketWidth).
			Build()
	}
	return nil
}

// Namer classifies and organizes file names according to a Config.
type Namer struct {
	cfg     Config
	videoRE *regexp.Regexp
}

// New returns a Namer for cfg.
func New(cfg Config) (*Namer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pattern := loosePattern
	if cfg.StrictDot {
		pattern = strictPattern
	}

	return &Namer{
		cfg:     cfg,
		videoRE: regexp.MustCompile(pattern),
	}, nil
}

// Default returns a Namer with DefaultConfig.
func Default() *Namer {
	n, err := New(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("videoname: default config invalid: %v", err))
	}
	return n
}

// Config returns the naming rules of n.
func (n *Namer) Config() Config {
	return n.cfg
}

// IsBucketDir reports whether name is an organized bucket directory name.
func IsBucketDir(name string) bool {
	return bucketRE.MatchString(name)
}
