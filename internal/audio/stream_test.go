package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

// rampSource counts upward so byte positions are easy to check.
type rampSource struct {
	next float32
}

func (r *rampSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = r.next
		r.next++
	}
}

func TestStreamReaderDuplicatesMonoToStereo(t *testing.T) {
	reader := NewStreamReader(&rampSource{})
	buf := make([]byte, 3*8)
	n, err := reader.Read(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("read %d bytes, want %d", n, len(buf))
	}
	for frame := 0; frame < 3; frame++ {
		left := math.Float32frombits(binary.LittleEndian.Uint32(buf[frame*8:]))
		right := math.Float32frombits(binary.LittleEndian.Uint32(buf[frame*8+4:]))
		if left != float32(frame) || right != float32(frame) {
			t.Fatalf("frame %d = (%v, %v), want duplicated %v", frame, left, right, float32(frame))
		}
	}
}

func TestStreamReaderShortBuffer(t *testing.T) {
	reader := NewStreamReader(&rampSource{})
	n, err := reader.Read(make([]byte, 7))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("a sub-frame buffer should read 0 bytes, got %d", n)
	}
}
