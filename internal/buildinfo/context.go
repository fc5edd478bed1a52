// Package buildinfo contains build-time metadata separate from user configuration
package buildinfo

import (
	"fmt"
	"runtime"
)

// UnknownValue is reported for metadata that was not injected at build time.
const UnknownValue = "unknown"

// BuildInfo provides an interface for accessing build-time metadata.
type BuildInfo interface {
	// Version returns the build version string
	Version() string
	// BuildDate returns the build date string
	BuildDate() string
}

// Context contains build-time metadata that is not user-configurable.
// Values are injected with -ldflags at build time.
type Context struct {
	version   string
	buildDate string
}

// NewContext returns build metadata for the given version and date.
func NewContext(version, buildDate string) *Context {
	return &Context{version: version, buildDate: buildDate}
}

// Version implements BuildInfo.Version
func (c *Context) Version() string {
	if c == nil || c.version == "" {
		return UnknownValue
	}
	return c.version
}

// BuildDate implements BuildInfo.BuildDate
func (c *Context) BuildDate() string {
	if c == nil || c.buildDate == "" {
		return UnknownValue
	}
	return c.buildDate
}

// GoVersion returns the Go release the binary was built with.
func (c *Context) GoVersion() string {
	return runtime.Version()
}

// String renders the one-line version banner.
func (c *Context) String() string {
	return fmt.Sprintf("roamvid %s (built %s, %s %s/%s)",
		c.Version(), c.BuildDate(), c.GoVersion(), runtime.GOOS, runtime.GOARCH)
}
