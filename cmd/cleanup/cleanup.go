package cleanup

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tphakala/roamvid/internal/conf"
	"github.com/tphakala/roamvid/internal/diskmanager"
	"github.com/tphakala/roamvid/internal/display"
	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/logger"
	"github.com/tphakala/roamvid/internal/observability"
	"github.com/tphakala/roamvid/internal/runtime"
)

// Command creates a new cobra.Command that frees disk space.
func Command(app *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup [root]",
		Short: "Remove the oldest recordings until enough space is free",
		Long: `Remove recordings from root, oldest first, until the filesystem has at least
--free-space GiB available. Each recording is removed together with its .THM
and .MOV.times files, and bucket directories left empty are removed too.
Use --pretend to see what would be removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, app.ResolveRoot(args))
		},
	}

	setupFlags(cmd)

	return cmd
}

// setupFlags defines flags specific to the cleanup command.
func setupFlags(cmd *cobra.Command) {
	cmd.Flags().Int64P("free-space", "f", 0, "Free space target in GiB")
	cmd.Flags().BoolP("pretend", "n", false, "Only report what would be removed")
	cmd.Flags().StringP("output", "o", conf.FormatText, "Output format: text, yaml, json")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
}

func run(cmd *cobra.Command, app *runtime.Context, root string) error {
	settings := app.Settings
	out := cmd.OutOrStdout()
	log := app.Logger.Module("cleanup")

	opts := []diskmanager.ReclaimerOption{
		diskmanager.WithLogger(app.Logger.Module("diskmanager")),
	}
	if app.Usage != nil {
		opts = append(opts, diskmanager.WithUsageProvider(app.Usage))
	}
	if settings.Output.Format == conf.FormatText {
		opts = append(opts, diskmanager.WithProgress(func(a diskmanager.Action) {
			fmt.Fprintln(out, a.String())
		}))
	}

	var m *observability.Metrics
	if settings.Metrics.File != "" {
		var err error
		m, err = observability.NewMetrics()
		if err != nil {
			return err
		}
		opts = append(opts, diskmanager.WithMetrics(m.DiskManager))
	}

	reclaimer := diskmanager.NewReclaimer(app.Namer, opts...)
	report, runErr := reclaimer.Reclaim(cmd.Context(), root, settings.Cleanup.FreeSpace, settings.Cleanup.Pretend)

	if report != nil {
		if err := writeReport(out, settings.Output.Format, report); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if m != nil {
		if err := m.WriteTextfile(settings.Metrics.File); err != nil {
			runErr = errors.Join(runErr, err)
		} else {
			log.Debug("Metrics written", logger.String("path", settings.Metrics.File))
		}
	}

	if runErr != nil {
		log.Error("Cleanup failed", logger.Error(runErr), logger.String("root", root))
	}
	return runErr
}

func writeReport(w io.Writer, format string, report *diskmanager.Report) error {
	if format != conf.FormatText {
		return display.WriteStructured(w, format, report)
	}

	verb := "Freed"
	if report.Pretend {
		verb = "Would free"
	}
	_, err := fmt.Fprintf(w, "%s %s (%s) from %s and %s; %s free of %s requested\n",
		verb,
		display.FormatBytes(report.BytesFreed()),
		display.FormatExactBytes(report.BytesFreed()),
		display.FormatCount(report.Count(diskmanager.FileRemoved), "file", "files"),
		display.FormatCount(report.Count(diskmanager.DirectoryRemoved), "directory", "directories"),
		display.FormatUnsignedBytes(report.FreeAfter),
		display.FormatUnsignedBytes(report.ThresholdBytes))
	return err
}
