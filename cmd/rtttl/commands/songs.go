package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSongsCmd())
}

func newSongsCmd() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List the available songs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := bookEntries(catalog)
			if err != nil {
				return err
			}

			width := 0
			for _, e := range entries {
				if len(e.Name) > width {
					width = len(e.Name)
				}
			}

			st := styles()
			w := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(w, "%s  %s\n", st.label.Render(padRight(e.Name, width)), st.dim.Render(preview(e.RTTTL)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalog, "songbook", "", "YAML catalog of extra songs")
	return cmd
}

// preview trims long tunes down to one listing line.
func preview(text string) string {
	const max = 56
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
