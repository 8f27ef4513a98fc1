package rtttl

import "time"

// ToneOutput is the square-wave device a Player drives: a PWM pin, a
// sound card, or anything else that can hold a frequency and switch
// between silence and an audible duty level.
type ToneOutput interface {
	SetFrequency(hz int)
	SetDuty(level uint16)
}

// DutyFull is the duty level for an audible note: the midpoint of a
// 16-bit PWM range, the classic 50% square wave. Zero is silence.
const DutyFull uint16 = 1 << 15

// toneGapMS is the fixed silence between notes, so repeated pitches are
// heard as separate notes rather than one long tone.
const toneGapMS = 20

type tonePhase int

const (
	toneOn tonePhase = iota
	toneOff
)

type PlayerOption func(*Player)

// WithClock replaces the player's millisecond clock. The replacement
// must be monotonic; tests use this to step time by hand.
func WithClock(now func() int64) PlayerOption {
	return func(p *Player) { p.now = now }
}

// Player walks a Song through a ToneOutput one Poll at a time. It never
// blocks and does no locking of its own: it is meant to be serviced by a
// single host loop alongside other periodic work, so all methods belong
// to that one goroutine.
type Player struct {
	out       ToneOutput
	now       func() int64
	song      *Song
	paused    bool
	complete  bool
	phase     tonePhase
	nextAt    int64
	listeners []func(*Player)
}

// NewPlayer wires a player to its tone output. The output is expected to
// start silent; the player only touches it once notes play.
func NewPlayer(out ToneOutput, opts ...PlayerOption) *Player {
	p := &Player{
		out:   out,
		now:   monotonicMS,
		phase: toneOn,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.nextAt = p.now()
	return p
}

// Load swaps in a new song. The completion and pause flags clear, the
// outgoing song's cursor rewinds, and registered listeners stay
// registered. The tone phase and schedule are left as they are.
func (p *Player) Load(song *Song) {
	p.reset()
	p.song = song
}

func (p *Player) reset() {
	p.complete = false
	p.paused = false
	if p.song != nil {
		p.song.Reset()
	}
}

// OnComplete registers a listener invoked when a song finishes
// naturally. Listeners fire in registration order and survive Load.
func (p *Player) OnComplete(fn func(*Player)) {
	p.listeners = append(p.listeners, fn)
}

func (p *Player) onComplete() {
	p.complete = true
	for _, fn := range p.listeners {
		fn(p)
	}
}

// Poll advances playback if the current note or gap has run its course.
// It returns true when it did work and false when there was nothing to
// do, and is cheap enough to call every iteration of a busy loop.
func (p *Player) Poll() bool {
	if p.paused || p.complete || p.song == nil {
		return false
	}

	now := p.now()
	if now < p.nextAt {
		return false
	}

	if p.song.Complete() {
		// End of the last cycle.
		p.out.SetDuty(0)
		p.onComplete()
		return false
	}

	if p.phase == toneOn {
		// The audible part of the next note. Rests keep their timing
		// but leave the output alone.
		note := p.song.NextNote()
		if !note.IsRest() {
			p.out.SetFrequency(note.Freq)
			p.out.SetDuty(DutyFull)
		}
		p.nextAt = now + note.Duration(p.song.Tempo).Milliseconds()
		p.phase = toneOff
	} else {
		// The gap before the next note.
		p.out.SetDuty(0)
		p.nextAt = now + toneGapMS
		p.phase = toneOn
	}
	return true
}

// Stop latches completion so further polls do nothing. It does not touch
// the output and does not fire completion listeners; only the natural
// end-of-song path does that.
func (p *Player) Stop() {
	p.complete = true
}

// Pause freezes playback. The schedule is preserved, so Resume picks up
// exactly where the song left off.
func (p *Player) Pause() {
	p.paused = true
}

// Resume lifts a pause.
func (p *Player) Resume() {
	p.paused = false
}

// Complete reports whether the player has latched completion, either via
// Stop or by playing the current song through.
func (p *Player) Complete() bool { return p.complete }

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

var clockStart = time.Now()

// monotonicMS is the default clock: milliseconds of the process
// monotonic clock, immune to wall-time adjustments.
func monotonicMS() int64 {
	return time.Since(clockStart).Milliseconds()
}
