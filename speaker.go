package rtttl

import "github.com/mfinkle/rtttl-go/internal/audio"

type speakerConfig struct {
	sampleRate int
}

func defaultSpeakerConfig() speakerConfig {
	return speakerConfig{sampleRate: 44100}
}

type SpeakerOption func(*speakerConfig)

// WithSampleRate sets the output sample rate in hertz. The first Speaker
// opened fixes the rate of the shared audio device; later Speakers must
// ask for the same rate.
func WithSampleRate(rate int) SpeakerOption {
	return func(cfg *speakerConfig) { cfg.sampleRate = rate }
}

// Speaker is a ToneOutput backed by the host sound card. It holds a
// square-wave oscillator on an always-running stream, so SetFrequency
// and SetDuty take effect at the next audio buffer.
type Speaker struct {
	osc    *audio.SquareWave
	player *audio.Player
}

// NewSpeaker opens the audio device and starts a silent stream.
func NewSpeaker(opts ...SpeakerOption) (*Speaker, error) {
	cfg := defaultSpeakerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	osc := audio.NewSquareWave(cfg.sampleRate)
	player, err := audio.NewPlayer(cfg.sampleRate, osc)
	if err != nil {
		return nil, err
	}
	player.Play()
	return &Speaker{
		osc:    osc,
		player: player,
	}, nil
}

func (s *Speaker) SetFrequency(hz int) { s.osc.SetFrequency(hz) }

func (s *Speaker) SetDuty(level uint16) { s.osc.SetDuty(level) }

// Close silences the oscillator and releases the stream.
func (s *Speaker) Close() error {
	s.osc.SetDuty(0)
	return s.player.Stop()
}
