package console

import "fmt"

// Frame-schedule constants. The clock runs at 24 bits * 60fps * 48kHz so
// that cycles divide evenly into both the raster grid and the sample
// rate, with no fractional pixel or sample ever pending across a frame.
const (
	Width      = 320
	Height     = 180
	TotalWidth = 640

	TotalHeight = 360
	FrameRate   = 60
	SampleRate  = 48000

	ClockRate = Bits * FrameRate * SampleRate

	CyclesPerFrame    = ClockRate / FrameRate
	CyclesPerScanline = CyclesPerFrame / TotalHeight
	CyclesPerPixel    = CyclesPerScanline / TotalWidth
	CyclesPerSample   = ClockRate / SampleRate
	SamplesPerFrame   = SampleRate / FrameRate

	// VideoBufferSize is the byte length of one RGBA video frame.
	VideoBufferSize = Width * Height * 4
)

// Console is the VM driver: it owns the CPU, RAM and audio sampler, and
// exposes the host surface a player or headless runner needs — construct
// from ROM, construct in a failed state, run one frame, and read back the
// video/audio buffers.
type Console struct {
	cpu     *CPU
	sampler Sampler

	video []byte
	audio []float32

	err error
}

// NewConsole builds a Console from a ROM image. The ROM is copied into
// RAM at address 0 and the program counter starts at 0.
func NewConsole(rom []byte) (*Console, error) {
	mem, err := NewMemory(rom)
	if err != nil {
		return NewFailed(err.Error()), err
	}
	banks := NewBanks()
	return &Console{
		cpu:   NewCPU(banks, mem),
		video: make([]byte, VideoBufferSize),
		audio: make([]float32, SamplesPerFrame),
	}, nil
}

// NewFailed returns a Console whose Run is a no-op that returns Err, and
// whose Err carries message, for callers that need to report a construction
// failure (e.g. an oversized ROM) through the same type ordinary
// consoles use.
func NewFailed(message string) *Console {
	return &Console{err: fmt.Errorf("console: %s", message)}
}

// Err returns the console's trap/construction error, or nil if it is
// running normally.
func (c *Console) Err() error {
	return c.err
}

// Registers returns a snapshot of context 0's register file.
func (c *Console) Registers() [RegisterCount]Word {
	if c.cpu == nil {
		return [RegisterCount]Word{}
	}
	return c.cpu.banks.contexts[0].registers
}

// RegistersAt returns a snapshot of an arbitrary context's register file,
// used by tests asserting nested-interrupt state.
func (c *Console) RegistersAt(ctx int) [RegisterCount]Word {
	return c.cpu.banks.contexts[ctx].registers
}

// Video returns the most recently produced RGBA video frame.
func (c *Console) Video() []byte { return c.video }

// Audio returns the most recently produced audio frame.
func (c *Console) Audio() []float32 { return c.audio }

// step runs the CPU for n cycles, recording the first error (if any) as
// the console's trap state. Subsequent calls become no-ops once trapped.
func (c *Console) step(n int) {
	if c.err != nil {
		return
	}
	for i := 0; i < n; i++ {
		if err := c.cpu.Step(); err != nil {
			c.err = err
			return
		}
	}
}

// sample reads one video pixel and, when requested, one audio sample.
func (c *Console) sample(x, y int, withAudio bool, audioIndex *int) {
	if c.err != nil {
		return
	}
	if x >= 0 && y >= 0 {
		src := AddrFramebuffer + (y*Width+x)*4
		dst := (y*Width + x) * 4
		copy(c.video[dst:dst+4], c.cpu.mem.data[src:src+4])
	}
	if withAudio && *audioIndex < len(c.audio) {
		c.audio[*audioIndex] = c.sampler.Sample(c.cpu.mem)
		*audioIndex++
	}
}

// Run executes exactly one frame: the visible raster, the VBLANK interrupt
// raise, and vertical blank. It is a no-op if the console is in a
// failed/trapped state.
func (c *Console) Run() error {
	if c.err != nil {
		return c.err
	}

	audioIndex := 0
	cycle := 0

	sampleDue := func() bool {
		cycle += CyclesPerPixel
		return cycle%CyclesPerSample == 0
	}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c.step(CyclesPerPixel)
			due := sampleDue()
			c.sample(x, y, due, &audioIndex)
			if c.err != nil {
				return c.err
			}
		}
		for x := Width; x < TotalWidth; x++ {
			c.step(CyclesPerPixel)
			if sampleDue() {
				c.sample(-1, -1, true, &audioIndex)
			}
			if c.err != nil {
				return c.err
			}
		}
	}

	if err := c.cpu.banks.Set(RegInterrupt, InterruptVBlank); err != nil {
		c.err = err
		return err
	}

	for y := Height; y < TotalHeight; y++ {
		for x := 0; x < TotalWidth; x++ {
			c.step(CyclesPerPixel)
			if sampleDue() {
				c.sample(-1, -1, true, &audioIndex)
			}
			if c.err != nil {
				return c.err
			}
		}
	}

	return nil
}
