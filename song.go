// Package rtttl parses RTTTL (Ring Tone Text Transfer Language) tunes
// and plays them through a square-wave tone output one non-blocking poll
// at a time, the way a microcontroller main loop drives a piezo.
package rtttl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is wrapped by every error NewSong returns.
var ErrFormat = errors.New("rtttl: invalid format")

// Song is a parsed tune plus its playback cursor. The note sequence is
// fixed at construction; only the cursor and the loop counter move
// afterwards.
type Song struct {
	Name     string
	Duration int // default beat divisor for notes without their own
	Octave   int // default octave for notes without their own
	Tempo    int // beats per minute

	notes     []Note
	cursor    int
	loops     int
	loopCount int
}

type SongOption func(*songConfig)

type songConfig struct {
	duration int
	octave   int
	tempo    int
	loops    int
}

// WithDuration overrides the tune's default note duration (beat divisor).
func WithDuration(d int) SongOption {
	return func(c *songConfig) { c.duration = d }
}

// WithOctave overrides the tune's default octave.
func WithOctave(o int) SongOption {
	return func(c *songConfig) { c.octave = o }
}

// WithTempo overrides the tune's tempo in beats per minute.
func WithTempo(bpm int) SongOption {
	return func(c *songConfig) { c.tempo = bpm }
}

// WithLoops sets how many times the song repeats after the first pass:
// 0 plays once, N repeats N more times, -1 repeats forever.
func WithLoops(n int) SongOption {
	return func(c *songConfig) { c.loops = n }
}

// NewSong parses an RTTTL string of the form "name:defaults:notes".
// Header defaults lose to options, and anything still unset falls back to
// duration 4, octave 6, tempo 63. Pitch keys with no table entry (like
// the "p" pause) become rests rather than errors; structural problems
// return an error wrapping ErrFormat.
func NewSong(text string, opts ...SongOption) (*Song, error) {
	var cfg songConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sections := strings.Split(strings.ToLower(text), ":")
	if len(sections) != 3 {
		return nil, fmt.Errorf("%w: want name:defaults:notes, got %d sections", ErrFormat, len(sections))
	}

	s := &Song{
		Name:     sections[0],
		Duration: cfg.duration,
		Octave:   cfg.octave,
		Tempo:    cfg.tempo,
		loops:    cfg.loops,
	}
	for _, def := range strings.Split(sections[1], ",") {
		def = strings.TrimSpace(def)
		if def == "" {
			continue
		}
		if def[0] != 'd' && def[0] != 'o' && def[0] != 'b' {
			// Unknown defaults are ignored.
			continue
		}
		if len(def) < 3 {
			return nil, fmt.Errorf("%w: malformed default %q", ErrFormat, def)
		}
		v, err := strconv.Atoi(def[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed default %q", ErrFormat, def)
		}
		switch {
		case def[0] == 'd' && s.Duration == 0:
			s.Duration = v
		case def[0] == 'o' && s.Octave == 0:
			s.Octave = v
		case def[0] == 'b' && s.Tempo == 0:
			s.Tempo = v
		}
	}
	if s.Duration == 0 {
		s.Duration = 4
	}
	if s.Octave == 0 {
		s.Octave = 6
	}
	if s.Tempo == 0 {
		s.Tempo = 63
	}

	if tune := strings.TrimSpace(sections[2]); tune != "" {
		for _, token := range strings.Split(tune, ",") {
			key, beats, err := parseNote(strings.TrimSpace(token), float64(s.Duration), s.Octave)
			if err != nil {
				return nil, err
			}
			var freq int
			if f, ok := piano[key]; ok {
				freq = int(f)
			}
			s.notes = append(s.notes, Note{Freq: freq, Beats: beats})
		}
	}
	return s, nil
}

// NextNote returns the note under the cursor and advances it. When the
// advance exhausts the sequence and the loop budget allows another pass,
// the cursor silently wraps, so a caller that keeps pulling notes from a
// repeating song never sees the seam. Once looping is spent, callers
// must check Complete before calling NextNote again.
func (s *Song) NextNote() Note {
	note := s.notes[s.cursor]
	s.cursor++

	if s.Complete() {
		s.loopCount++
		if s.loops == -1 || s.loopCount <= s.loops {
			s.Reset()
		}
	}
	return note
}

// Complete reports whether the cursor has run off the end of the tune.
func (s *Song) Complete() bool {
	return s.cursor >= len(s.notes)
}

// Reset rewinds the cursor. The loop counter is left alone.
func (s *Song) Reset() {
	s.cursor = 0
}

// Len returns the number of notes in one pass of the tune.
func (s *Song) Len() int { return len(s.notes) }

// Notes returns a copy of the resolved note sequence.
func (s *Song) Notes() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// PlayTime estimates how long one pass of the tune takes, counting a
// tone gap after every note. Playback skips the gap after the last
// note, so the estimate runs one gap long.
func (s *Song) PlayTime() time.Duration {
	var total time.Duration
	for _, n := range s.notes {
		total += n.Duration(s.Tempo) + toneGapMS*time.Millisecond
	}
	return total
}
