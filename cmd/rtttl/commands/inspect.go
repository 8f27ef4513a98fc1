package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	var (
		tune    tuneFlags
		catalog string
	)

	cmd := &cobra.Command{
		Use:   "inspect [song]",
		Short: "Print the parsed notes of a ringtone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song, err := resolveSong(songArg(args), catalog, &tune)
			if err != nil {
				return err
			}

			st := styles()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, st.title.Render(song.Name))
			fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("d=%d o=%d b=%d", song.Duration, song.Octave, song.Tempo)))
			for i, n := range song.Notes() {
				pitch := fmt.Sprintf("%4d Hz", n.Freq)
				if n.IsRest() {
					pitch = st.dim.Render("   rest")
				}
				fmt.Fprintf(w, "%3d  %s  %4g  %v\n", i, pitch, n.Beats, n.Duration(song.Tempo))
			}
			fmt.Fprintf(w, "%d notes, about %v with gaps\n", song.Len(), song.PlayTime())
			return nil
		},
	}
	tune.register(cmd)
	cmd.Flags().StringVar(&catalog, "songbook", "", "YAML catalog of extra songs")
	return cmd
}
