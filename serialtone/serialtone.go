// Package serialtone drives a tone generator on a microcontroller over
// a serial line. Each frequency or duty change is sent as one framed
// command; the firmware owns the actual PWM timer.
package serialtone

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.bug.st/serial"
)

// Output mirrors a (frequency, duty) pair onto the wire. It satisfies
// the player's tone output contract, so writes must never block playback
// for long and write errors are logged and dropped rather than returned.
type Output struct {
	mu   sync.Mutex
	port io.WriteCloser
	log  *slog.Logger
	freq uint16
	duty uint16
	seq  byte
}

// Open connects to the tone generator on the named serial device.
func Open(device string, baud int) (*Output, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return newOutput(port, slog.Default()), nil
}

func newOutput(port io.WriteCloser, log *slog.Logger) *Output {
	return &Output{port: port, log: log}
}

// SetFrequency retunes the generator. The frame goes out immediately at
// the current duty, so a silent output stays silent.
func (o *Output) SetFrequency(hz int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	freq := clampU16(hz)
	if freq == o.freq {
		return
	}
	o.freq = freq
	o.send()
}

// SetDuty switches the generator between silence and an audible pulse
// width.
func (o *Output) SetDuty(level uint16) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if level == o.duty {
		return
	}
	o.duty = level
	o.send()
}

// Close sends a final silencing frame and releases the port.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.duty != 0 {
		o.duty = 0
		o.send()
	}
	return o.port.Close()
}

// send writes the current state. Callers hold o.mu.
func (o *Output) send() {
	frame := Frame{Freq: o.freq, Duty: o.duty, Seq: o.seq}
	o.seq++
	if _, err := o.port.Write(frame.Encode()); err != nil {
		o.log.Error("serialtone: dropped frame", "seq", frame.Seq, "err", err)
	}
}

func clampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
