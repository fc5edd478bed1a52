package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/roamvid/internal/runtime"
)

// Command creates a new cobra.Command to print build information.
func Command(app *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of roamvid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.Build.String())
			return err
		},
	}

	return cmd
}
