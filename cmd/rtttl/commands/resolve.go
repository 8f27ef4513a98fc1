package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	rtttl "github.com/mfinkle/rtttl-go"
	"github.com/mfinkle/rtttl-go/songbook"
)

// tuneFlags are the header overrides shared by every command that
// parses a ringtone. An override beats the song's own header, which in
// turn beats the RTTTL fallbacks.
type tuneFlags struct {
	duration int
	octave   int
	tempo    int
	loops    int
}

func (f *tuneFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.duration, "duration", 0, "override the default note duration")
	cmd.Flags().IntVar(&f.octave, "octave", 0, "override the default octave")
	cmd.Flags().IntVar(&f.tempo, "tempo", 0, "override the tempo in bpm")
	cmd.Flags().IntVar(&f.loops, "loops", 0, "extra repeats: -1 loops forever")
}

func (f *tuneFlags) options() []rtttl.SongOption {
	var opts []rtttl.SongOption
	if f.duration > 0 {
		opts = append(opts, rtttl.WithDuration(f.duration))
	}
	if f.octave > 0 {
		opts = append(opts, rtttl.WithOctave(f.octave))
	}
	if f.tempo > 0 {
		opts = append(opts, rtttl.WithTempo(f.tempo))
	}
	if f.loops != 0 {
		opts = append(opts, rtttl.WithLoops(f.loops))
	}
	return opts
}

// bookEntries returns the built-in songbook plus the extra catalog, if
// one was named.
func bookEntries(catalog string) ([]songbook.Entry, error) {
	entries := songbook.All()
	if catalog != "" {
		extra, err := songbook.LoadFile(catalog)
		if err != nil {
			return nil, err
		}
		entries = append(entries, extra...)
	}
	return entries, nil
}

// resolveRTTTL turns a command argument into RTTTL text. An argument
// containing a colon is taken as inline RTTTL, @path reads a file, and
// anything else is a songbook lookup.
func resolveRTTTL(arg, catalog string) (string, error) {
	switch {
	case strings.Contains(arg, ":"):
		return arg, nil
	case strings.HasPrefix(arg, "@"):
		raw, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	default:
		entries, err := bookEntries(catalog)
		if err != nil {
			return "", err
		}
		for _, e := range entries {
			if strings.EqualFold(e.Name, arg) {
				return e.RTTTL, nil
			}
		}
		return "", fmt.Errorf("%q: %w", arg, songbook.ErrNotFound)
	}
}

func resolveSong(arg, catalog string, flags *tuneFlags) (*rtttl.Song, error) {
	text, err := resolveRTTTL(arg, catalog)
	if err != nil {
		return nil, err
	}
	return rtttl.NewSong(text, flags.options()...)
}

// songArg applies the demo default when no song was named.
func songArg(args []string) string {
	if len(args) == 0 {
		return "scale"
	}
	return args[0]
}
