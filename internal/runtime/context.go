// Package runtime holds the state shared by roamvid commands for one invocation
package runtime

import (
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tphakala/roamvid/internal/buildinfo"
	"github.com/tphakala/roamvid/internal/conf"
	"github.com/tphakala/roamvid/internal/diskmanager"
	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/logger"
	"github.com/tphakala/roamvid/internal/videoname"
)

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"debug":        "debug",
	"log-file":     "logging.file",
	"bucket-width": "naming.bucketwidth",
	"strict-dot":   "naming.strictdot",
	"free-space":   "cleanup.freespace",
	"pretend":      "cleanup.pretend",
	"output":       "output.format",
	"metrics-file": "metrics.file",
}

// Context contains runtime state that is derived from configuration.
// Build metadata is injected at startup; everything else is filled in by Setup.
type Context struct {
	Build *buildinfo.Context

	// Viper collects defaults, the config file, environment and flags.
	Viper *viper.Viper

	Settings *conf.Settings
	Namer    *videoname.Namer
	Logger   logger.Logger

	// Stderr receives console logs. Defaults to os.Stderr.
	Stderr io.Writer

	// Usage overrides the free space probe; nil uses the operating system.
	Usage diskmanager.UsageProvider

	central *logger.CentralLogger
}

// New returns a Context with a fresh configuration registry.
func New(build *buildinfo.Context) *Context {
	return &Context{
		Build:  build,
		Viper:  viper.New(),
		Stderr: os.Stderr,
	}
}

// BindFlags binds every known flag in flags to its configuration key.
// Flags left unset on the command line do not override other sources.
func (c *Context) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := c.Viper.BindPFlag(key, f); err != nil {
			return errors.New(err).
				Category(errors.CategoryConfiguration).
				Context("flag", name).
				Build()
		}
	}
	return nil
}

// Setup loads settings and builds the namer and logger. configFile, when not
// empty, names a config file that must exist.
func (c *Context) Setup(configFile string) error {
	if configFile != "" {
		c.Viper.SetConfigFile(configFile)
	}

	settings, err := conf.Load(c.Viper)
	if err != nil {
		return err
	}

	namer, err := videoname.New(settings.NamingConfig())
	if err != nil {
		return err
	}

	central, err := logger.NewCentralLogger(settings.LoggingConfig(), logger.WithConsoleWriter(c.Stderr))
	if err != nil {
		return err
	}

	c.Settings = settings
	c.Namer = namer
	c.central = central
	c.Logger = central.Module("roamvid")

	c.Logger.Debug("Configuration loaded",
		logger.String("config_file", c.Viper.ConfigFileUsed()),
		logger.String("root", settings.Root),
		logger.Int("bucket_width", settings.Naming.BucketWidth),
		logger.Bool("strict_dot", settings.Naming.StrictDot))
	return nil
}

// ResolveRoot returns the root given on the command line, or the configured one.
func (c *Context) ResolveRoot(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.Settings.Root
}

// Close flushes and closes log outputs.
func (c *Context) Close() error {
	if c.central == nil {
		return nil
	}
	err := c.central.Close()
	c.central = nil
	return err
}
