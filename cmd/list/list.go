package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/roamvid/internal/conf"
	"github.com/tphakala/roamvid/internal/diskmanager"
	"github.com/tphakala/roamvid/internal/display"
	"github.com/tphakala/roamvid/internal/logger"
	"github.com/tphakala/roamvid/internal/runtime"
)

// Command creates a new cobra.Command listing recordings.
func Command(app *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List recordings in cleanup order",
		Long: `List the recordings found in root and in its bucket directories, oldest
first. This is the order cleanup removes them in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.ResolveRoot(args)
			out := cmd.OutOrStdout()
			format := app.Settings.Output.Format

			log := app.Logger.Module("list").With(logger.String("root", root))

			var paths []string
			count := 0
			for rel, err := range diskmanager.Videos(root, app.Namer) {
				if err != nil {
					return err
				}
				count++
				if format == conf.FormatText {
					fmt.Fprintln(out, rel)
					continue
				}
				paths = append(paths, rel)
			}

			if format != conf.FormatText {
				if paths == nil {
					paths = []string{}
				}
				if err := display.WriteStructured(out, format, paths); err != nil {
					return err
				}
			}

			log.Debug("Listed recordings", logger.Int("count", count))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", conf.FormatText, "Output format: text, yaml, json")

	return cmd
}
