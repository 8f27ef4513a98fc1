package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rtttl "github.com/mfinkle/rtttl-go"
)

func init() {
	rootCmd.AddCommand(newExportCmd())
}

func newExportCmd() *cobra.Command {
	var (
		tune       tuneFlags
		catalog    string
		sampleRate int
		maxSeconds float64
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "export [song]",
		Short: "Render a ringtone to a WAV file",
		Long: `Render a ringtone offline and write it as a mono float32 WAV.

Looping songs are cut off at --max-seconds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song, err := resolveSong(songArg(args), catalog, &tune)
			if err != nil {
				return err
			}

			samples := rtttl.RenderSamples(song, sampleRate, maxSeconds)
			wav := rtttl.EncodeWAVFloat32LE(samples, sampleRate, 1)
			if err := os.WriteFile(outPath, wav, 0o644); err != nil {
				return err
			}
			seconds := float64(len(samples)) / float64(sampleRate)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%.1fs at %d Hz)\n", outPath, seconds, sampleRate)
			return nil
		},
	}
	tune.register(cmd)
	cmd.Flags().StringVar(&catalog, "songbook", "", "YAML catalog of extra songs")
	cmd.Flags().IntVar(&sampleRate, "rate", 44100, "sample rate in hz")
	cmd.Flags().Float64Var(&maxSeconds, "max-seconds", 0, "cap on rendered audio (0 means five minutes)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "song.wav", "output WAV path")
	return cmd
}
