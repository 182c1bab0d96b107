package console

import "math"

// Sampler is the single phase-accumulator oscillator driven by a
// memory-mapped MIDI pitch. It outputs a hard square wave (signum of a
// sine) rather than a smooth tone, and that's the only waveform kitty24
// supports — no mixing or envelope shaping.
type Sampler struct {
	phase float64
}

// Sample reads the current MIDI pitch from mem, advances the oscillator's
// phase, and returns one sample in [-0.125, 0.125].
func (s *Sampler) Sample(mem *Memory) float32 {
	note := float64(mem.ReadByte(AddrAudioMIDINote))
	frac := float64(mem.ReadByte(AddrAudioMIDIFrac)) / 256.0
	midi := note + frac
	freq := 440.0 * math.Pow(2, (midi-69)/12)

	s.phase += 2 * math.Pi * freq / SampleRate
	if s.phase > 2*math.Pi {
		s.phase = math.Mod(s.phase, 2*math.Pi)
	}

	out := 0.125 * signum(math.Sin(s.phase-math.Pi))
	return float32(out)
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
