package audio

import "sync"

// amplitude leaves headroom so the raw square does not slam the DAC.
const amplitude = 0.25

// SquareWave is a PWM-style rectangular oscillator: the digital signal a
// piezo on a PWM pin would see, rendered as samples. Frequency and duty
// level may be poked from the polling goroutine while the audio thread
// is mid-Process.
type SquareWave struct {
	mu         sync.Mutex
	sampleRate int
	freq       int
	duty       uint16
	pos        int
}

// NewSquareWave returns a silent oscillator at the given sample rate.
func NewSquareWave(sampleRate int) *SquareWave {
	return &SquareWave{sampleRate: sampleRate}
}

// SetFrequency sets the tone pitch in hertz and restarts the waveform
// phase so the new period begins cleanly.
func (w *SquareWave) SetFrequency(hz int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if hz != w.freq {
		w.freq = hz
		w.pos = 0
	}
}

// SetDuty sets the pulse width out of a 16-bit range. Zero is silence;
// 1<<15 is the 50% square an audible note uses.
func (w *SquareWave) SetDuty(level uint16) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.duty = level
}

// Process fills dst with the next run of mono samples.
func (w *SquareWave) Process(dst []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.duty == 0 || w.freq <= 0 || w.freq > w.sampleRate/2 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	period := w.sampleRate / w.freq
	if period < 2 {
		period = 2
	}
	high := period * int(w.duty) / (1 << 16)
	for i := range dst {
		if w.pos < high {
			dst[i] = amplitude
		} else {
			dst[i] = -amplitude
		}
		w.pos++
		if w.pos >= period {
			w.pos = 0
		}
	}
}
