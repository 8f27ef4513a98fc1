package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	rtttl "github.com/mfinkle/rtttl-go"
)

// cliStyles is the green-on-dark theme shared by the commands.
type cliStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	dim   lipgloss.Style
}

func styles() cliStyles {
	primary := lipgloss.Color("#00ff9f")
	dim := lipgloss.Color("#6e7681")
	return cliStyles{
		title: lipgloss.NewStyle().Bold(true).Foreground(primary),
		label: lipgloss.NewStyle().Bold(true).Foreground(primary),
		dim:   lipgloss.NewStyle().Foreground(dim),
	}
}

// padRight pads before styling; styled strings carry ANSI codes that
// defeat fmt width verbs.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func nowPlaying(song *rtttl.Song) string {
	st := styles()
	header := fmt.Sprintf("  d=%d o=%d b=%d, %d notes", song.Duration, song.Octave, song.Tempo, song.Len())
	return st.title.Render("♪ "+song.Name) + st.dim.Render(header)
}
