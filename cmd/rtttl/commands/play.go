package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	rtttl "github.com/mfinkle/rtttl-go"
	"github.com/mfinkle/rtttl-go/pwmtone"
	"github.com/mfinkle/rtttl-go/serialtone"
)

func init() {
	rootCmd.AddCommand(newPlayCmd())
}

// toneBackend is a closable tone output.
type toneBackend interface {
	rtttl.ToneOutput
	Close() error
}

type backendFlags struct {
	name       string
	sampleRate int
	device     string
	baud       int
	pwmChip    int
	pwmChannel int
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "backend", "speaker", "tone backend: speaker, serial or pwm")
	cmd.Flags().IntVar(&f.sampleRate, "rate", 44100, "speaker sample rate in hz")
	cmd.Flags().StringVar(&f.device, "device", "/dev/ttyUSB0", "serial device for the serial backend")
	cmd.Flags().IntVar(&f.baud, "baud", 115200, "baud rate for the serial backend")
	cmd.Flags().IntVar(&f.pwmChip, "pwm-chip", 0, "pwm chip number for the pwm backend")
	cmd.Flags().IntVar(&f.pwmChannel, "pwm-channel", 0, "pwm channel number for the pwm backend")
}

func (f *backendFlags) open() (toneBackend, error) {
	switch f.name {
	case "speaker":
		out, err := rtttl.NewSpeaker(rtttl.WithSampleRate(f.sampleRate))
		if err != nil {
			return nil, err
		}
		return out, nil
	case "serial":
		out, err := serialtone.Open(f.device, f.baud)
		if err != nil {
			return nil, err
		}
		return out, nil
	case "pwm":
		out, err := pwmtone.Open(f.pwmChip, f.pwmChannel)
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", f.name)
	}
}

func newPlayCmd() *cobra.Command {
	var (
		tune    tuneFlags
		backend backendFlags
		catalog string
	)

	cmd := &cobra.Command{
		Use:   "play [song]",
		Short: "Play a ringtone",
		Long: `Play a ringtone on the chosen backend.

The song is inline RTTTL, @path, or a songbook name; with no argument
the built-in scale plays. Ctrl-C stops playback.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song, err := resolveSong(songArg(args), catalog, &tune)
			if err != nil {
				return err
			}
			out, err := backend.open()
			if err != nil {
				return err
			}
			defer out.Close()

			fmt.Fprintln(cmd.OutOrStdout(), nowPlaying(song))
			return runSong(cmd.OutOrStdout(), song, out)
		},
	}
	tune.register(cmd)
	backend.register(cmd)
	cmd.Flags().StringVar(&catalog, "songbook", "", "YAML catalog of extra songs")
	return cmd
}

// runSong services the player once a millisecond until the song ends or
// an interrupt arrives.
func runSong(w io.Writer, song *rtttl.Song, out rtttl.ToneOutput) error {
	player := rtttl.NewPlayer(out)
	done := make(chan struct{})
	player.OnComplete(func(*rtttl.Player) { close(done) })
	player.Load(song)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	st := styles()
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			player.Poll()
		case <-done:
			fmt.Fprintln(w, st.dim.Render("done"))
			return nil
		case <-sig:
			player.Stop()
			out.SetDuty(0)
			fmt.Fprintln(w, st.dim.Render("stopped"))
			return nil
		}
	}
}
