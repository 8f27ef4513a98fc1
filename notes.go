package rtttl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// piano maps a pitch key (octave digit + letter + optional sharp, e.g.
// "5a#") to its frequency in hertz, A4 = 440 equal temperament. Keys with
// no entry play as rests, which is how pause ("p") tokens work.
var piano = map[string]float64{
	"4c": 261.626, "4c#": 277.183, "4d": 293.665, "4d#": 311.127,
	"4e": 329.628, "4f": 349.228, "4f#": 369.994, "4g": 391.995,
	"4g#": 415.305, "4a": 440, "4a#": 466.164, "4b": 493.883,
	"5c": 523.251, "5c#": 554.365, "5d": 587.330, "5d#": 622.254,
	"5e": 659.255, "5f": 698.456, "5f#": 739.989, "5g": 783.991,
	"5g#": 830.609, "5a": 880, "5a#": 932.328, "5b": 987.767,
	"6c": 1046.50, "6c#": 1108.73, "6d": 1174.66, "6d#": 1244.51,
	"6e": 1318.51, "6f": 1396.91, "6f#": 1479.98, "6g": 1567.98,
	"6g#": 1661.22, "6a": 1760, "6a#": 1864.66, "6b": 1975.53,
	"7c": 2093, "7c#": 2217.46,
}

// Note is one resolved step of a tune: a frequency in hertz and a length
// in RTTTL beat units (4 = quarter note, 8 = eighth; dotted notes carry
// the 1.5 multiplier, so the value may be fractional). Freq 0 is a rest,
// silence that still occupies its duration.
type Note struct {
	Freq  int
	Beats float64
}

// IsRest reports whether the note is silence.
func (n Note) IsRest() bool { return n.Freq == 0 }

// Duration converts the note's beat length to real time at the given
// tempo in beats per minute.
func (n Note) Duration(tempo int) time.Duration {
	return time.Duration(int64(4/n.Beats*60*1000/float64(tempo))) * time.Millisecond
}

// parseNote splits one tune token into its pitch-table key and its length
// in beats. A token looks like "8f#.6": an optional one or two digit
// duration, a pitch letter, optional '#', optional '.', and an optional
// trailing octave digit. The caller lowercases and trims the token first.
func parseNote(token string, defBeats float64, defOctave int) (string, float64, error) {
	if token == "" {
		return "", 0, fmt.Errorf("%w: empty note", ErrFormat)
	}
	beats := defBeats
	var letter byte
	switch {
	case len(token) >= 2 && isDigit(token[0]) && isDigit(token[1]):
		if len(token) < 3 {
			return "", 0, fmt.Errorf("%w: note %q has a duration but no pitch", ErrFormat, token)
		}
		beats = float64(int(token[0]-'0')*10 + int(token[1]-'0'))
		letter = token[2]
	case isDigit(token[0]):
		if len(token) < 2 {
			return "", 0, fmt.Errorf("%w: note %q has a duration but no pitch", ErrFormat, token)
		}
		beats = float64(token[0] - '0')
		letter = token[1]
	default:
		letter = token[0]
	}
	if strings.ContainsRune(token, '.') {
		beats *= 1.5
	}
	pitch := string(letter)
	if strings.ContainsRune(token, '#') {
		pitch += "#"
	}
	octave := strconv.Itoa(defOctave)
	if last := token[len(token)-1]; isDigit(last) {
		octave = string(last)
	}
	return octave + pitch, beats, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
