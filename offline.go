package rtttl

import (
	"encoding/binary"
	"math"

	"github.com/mfinkle/rtttl-go/internal/audio"
)

// maxRenderSeconds bounds offline rendering so a song looping forever
// still yields a finite buffer.
const maxRenderSeconds = 300

// RenderSamples plays song through a square-wave oscillator under a
// simulated millisecond clock and returns the mono samples at the given
// rate. Rendering stops when the song completes or when maxSeconds of
// audio have been produced, whichever comes first; maxSeconds <= 0 falls
// back to a five minute cap.
func RenderSamples(song *Song, sampleRate int, maxSeconds float64) []float32 {
	if maxSeconds <= 0 {
		maxSeconds = maxRenderSeconds
	}
	capSamples := int(float64(sampleRate) * maxSeconds)

	osc := audio.NewSquareWave(sampleRate)
	var ms int64
	player := NewPlayer(osc, WithClock(func() int64 { return ms }))
	player.Load(song)

	out := make([]float32, 0, capSamples)
	scratch := make([]float32, sampleRate/1000+1)
	for len(out) < capSamples && !player.Complete() {
		player.Poll()
		ms++
		target := int(int64(sampleRate) * ms / 1000)
		if target > capSamples {
			target = capSamples
		}
		for len(out) < target {
			n := target - len(out)
			if n > len(scratch) {
				n = len(scratch)
			}
			osc.Process(scratch[:n])
			out = append(out, scratch[:n]...)
		}
	}
	return out
}

func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
