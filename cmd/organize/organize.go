package organize

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tphakala/roamvid/internal/conf"
	"github.com/tphakala/roamvid/internal/diskmanager"
	"github.com/tphakala/roamvid/internal/display"
	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/logger"
	"github.com/tphakala/roamvid/internal/runtime"
	"github.com/tphakala/roamvid/internal/videoname"
)

// Move is one planned rename, relative to the root.
type Move struct {
	Source      string `yaml:"source" json:"source"`
	Destination string `yaml:"destination" json:"destination"`
	// InPlace is set when the file already sits at its destination.
	InPlace bool `yaml:"in_place" json:"in_place"`
	// Conflict is set when another file already occupies the destination.
	Conflict bool `yaml:"conflict,omitempty" json:"conflict,omitempty"`
}

// String renders the plan line for m.
func (m Move) String() string {
	switch {
	case m.InPlace:
		return fmt.Sprintf("%s (in place)", m.Source)
	case m.Conflict:
		return fmt.Sprintf("%s -> %s (destination exists)", m.Source, m.Destination)
	default:
		return fmt.Sprintf("%s -> %s", m.Source, m.Destination)
	}
}

// Plan computes where every recording under root belongs. A move is marked as
// a conflict when its destination exists or an earlier move already claims it.
// Nothing is moved.
func Plan(root string, namer *videoname.Namer) ([]Move, error) {
	moves := []Move{}
	// planned holds destinations claimed by earlier moves.
	planned := make(map[string]struct{})
	for rel, err := range diskmanager.Videos(root, namer) {
		if err != nil {
			return moves, err
		}
		dest, ok := namer.OrganizedPath(filepath.Base(rel))
		if !ok {
			continue
		}

		m := Move{Source: rel, Destination: dest, InPlace: rel == dest}
		if !m.InPlace {
			if _, taken := planned[dest]; taken {
				m.Conflict = true
			} else {
				_, err := os.Lstat(filepath.Join(root, dest))
				switch {
				case err == nil:
					m.Conflict = true
				case !errors.Is(err, fs.ErrNotExist):
					return moves, errors.FileError(err, filepath.Join(root, dest), 0)
				}
			}
		}
		planned[dest] = struct{}{}
		moves = append(moves, m)
	}
	return moves, nil
}

// Command creates a new cobra.Command printing the organization plan.
func Command(app *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize [root]",
		Short: "Show where each recording belongs",
		Long: `Show the bucket directory and normalized name of every recording in root.
Continuation segments such as FI011250.MOV become FILE1250-1.MOV.
No files are moved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.ResolveRoot(args)
			log := app.Logger.Module("organize").With(logger.String("root", root))

			moves, err := Plan(root, app.Namer)
			if err != nil {
				return err
			}

			if err := writePlan(cmd.OutOrStdout(), app.Settings.Output.Format, moves); err != nil {
				return err
			}

			pending := 0
			for _, m := range moves {
				if !m.InPlace {
					pending++
				}
			}
			log.Debug("Planned organization",
				logger.Int("recordings", len(moves)),
				logger.Int("pending", pending))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", conf.FormatText, "Output format: text, yaml, json")

	return cmd
}

func writePlan(w io.Writer, format string, moves []Move) error {
	if format != conf.FormatText {
		return display.WriteStructured(w, format, moves)
	}
	for _, m := range moves {
		if _, err := fmt.Fprintln(w, m.String()); err != nil {
			return err
		}
	}
	return nil
}
