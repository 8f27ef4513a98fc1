package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rtttl",
	Short: "Play and convert Nokia-style RTTTL ringtones",
	Long: `rtttl - play Nokia-style RTTTL ringtones.

A song is given inline, read from a file with @path, or looked up by
name in the songbook:

  rtttl play "scale:d=8,o=5,b=160:c,d,e,f,g,a,b,c6"
  rtttl play @doorbell.txt
  rtttl play twinkle

Playback backends:
  speaker  host sound card (default)
  serial   framed commands to a microcontroller tone generator
  pwm      Linux sysfs PWM channel`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initLogger configures the shared slog handler and calls slog.SetDefault
// so every package logs through it.
func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	})
	slog.SetDefault(slog.New(h))
}
