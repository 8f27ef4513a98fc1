package serialtone

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type recordingPort struct {
	frames [][]byte
	fail   bool
	closed bool
}

func (p *recordingPort) Write(b []byte) (int, error) {
	if p.fail {
		return 0, errors.New("wire unplugged")
	}
	frame := make([]byte, len(b))
	copy(frame, b)
	p.frames = append(p.frames, frame)
	return len(b), nil
}

func (p *recordingPort) Close() error {
	p.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func frameFreq(b []byte) uint16 { return uint16(b[4])<<8 | uint16(b[5]) }
func frameDuty(b []byte) uint16 { return uint16(b[6])<<8 | uint16(b[7]) }
func frameSeq(b []byte) byte    { return b[8] }

func TestOutputSendsOnlyOnChange(t *testing.T) {
	port := &recordingPort{}
	out := newOutput(port, discardLogger())

	out.SetFrequency(440)
	out.SetDuty(0x8000)
	out.SetDuty(0x8000)
	out.SetFrequency(440)
	out.SetDuty(0)

	if len(port.frames) != 3 {
		t.Fatalf("sent %d frames, want 3", len(port.frames))
	}
	if f := port.frames[0]; frameFreq(f) != 440 || frameDuty(f) != 0 || frameSeq(f) != 0 {
		t.Fatalf("frame 0 = freq %d duty %#x seq %d", frameFreq(f), frameDuty(f), frameSeq(f))
	}
	if f := port.frames[1]; frameFreq(f) != 440 || frameDuty(f) != 0x8000 || frameSeq(f) != 1 {
		t.Fatalf("frame 1 = freq %d duty %#x seq %d", frameFreq(f), frameDuty(f), frameSeq(f))
	}
	if f := port.frames[2]; frameDuty(f) != 0 || frameSeq(f) != 2 {
		t.Fatalf("frame 2 = duty %#x seq %d", frameDuty(f), frameSeq(f))
	}
}

func TestOutputCloseSilencesAndClosesPort(t *testing.T) {
	port := &recordingPort{}
	out := newOutput(port, discardLogger())

	out.SetFrequency(880)
	out.SetDuty(0x8000)
	if err := out.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !port.closed {
		t.Fatal("port was not closed")
	}
	last := port.frames[len(port.frames)-1]
	if frameDuty(last) != 0 || frameFreq(last) != 880 {
		t.Fatalf("final frame = freq %d duty %#x, want silenced 880", frameFreq(last), frameDuty(last))
	}
}

func TestOutputDropsFramesOnWriteError(t *testing.T) {
	port := &recordingPort{fail: true}
	out := newOutput(port, discardLogger())

	out.SetFrequency(100)

	port.fail = false
	out.SetDuty(0x8000)

	if len(port.frames) != 1 {
		t.Fatalf("recorded %d frames, want 1", len(port.frames))
	}
	f := port.frames[0]
	if frameFreq(f) != 100 || frameDuty(f) != 0x8000 || frameSeq(f) != 1 {
		t.Fatalf("frame = freq %d duty %#x seq %d", frameFreq(f), frameDuty(f), frameSeq(f))
	}
}

func TestOutputClampsFrequency(t *testing.T) {
	port := &recordingPort{}
	out := newOutput(port, discardLogger())

	out.SetFrequency(1 << 20)
	if got := frameFreq(port.frames[0]); got != 0xFFFF {
		t.Fatalf("frequency clamped to %d, want 65535", got)
	}
}
