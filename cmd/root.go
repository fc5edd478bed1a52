package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/roamvid/cmd/cleanup"
	"github.com/tphakala/roamvid/cmd/list"
	"github.com/tphakala/roamvid/cmd/organize"
	"github.com/tphakala/roamvid/cmd/version"
	"github.com/tphakala/roamvid/internal/runtime"
	"github.com/tphakala/roamvid/internal/videoname"
)

// RootCommand creates and returns the root command. The caller closes app
// once the command has run.
func RootCommand(app *runtime.Context) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "roamvid",
		Short: "Organize and prune ContourROAM dash camera recordings",
		Long: `roamvid lists the recordings of a ContourROAM camera, shows where each one
belongs in a tree of numbered bucket directories, and removes the oldest
recordings until enough disk space is free.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, &configFile)

	versionCmd := version.Command(app)
	subcommands := []*cobra.Command{
		list.Command(app),
		organize.Command(app),
		cleanup.Command(app),
		versionCmd,
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Skip setup for the version command
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		if err := app.BindFlags(cmd.Flags()); err != nil {
			return err
		}
		app.Stderr = cmd.ErrOrStderr()
		return app.Setup(configFile)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, configFile *string) {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(configFile, "config", "", "Path to the configuration file (default searches ~/.config/roamvid and /etc/roamvid)")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.Int("bucket-width", videoname.DefaultBucketWidth, "Number of recordings per bucket directory, must divide 10000")
	flags.Bool("strict-dot", false, "Require a literal dot before the file extension")
}
