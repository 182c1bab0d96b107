package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/emma-elyon/kitty24/console"
)

func newRunCmd() *cobra.Command {
	var frames int
	var ppmPath string
	var wavPath string
	cmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Run a ROM headlessly for N frames, optionally dumping video/audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			vm, err := console.NewConsole(rom)
			if err != nil {
				return fmt.Errorf("building console: %w", err)
			}

			var audio []float32
			for i := 0; i < frames; i++ {
				if err := vm.Run(); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				audio = append(audio, vm.Audio()...)
				glog.V(1).Infof("frame %d: context=%d", i, vm.Registers()[console.RegInterrupt])
			}

			if ppmPath != "" {
				if err := writePPM(ppmPath, vm.Video()); err != nil {
					return err
				}
			}
			if wavPath != "" {
				if err := writeWAV(wavPath, audio); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "Number of frames to execute")
	cmd.Flags().StringVar(&ppmPath, "ppm", "", "Dump the final frame's video buffer as a PPM image")
	cmd.Flags().StringVar(&wavPath, "wav", "", "Dump the collected audio as a 16-bit PCM WAV file")
	return cmd
}

// writePPM writes a binary PPM (P6) of a WIDTH*HEIGHT RGBA buffer, dropping
// alpha. PPM needs no codec, just a header and raw samples, so this skips
// pulling in an image-encoding package for a one-off dump.
func writePPM(path string, rgba []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", console.Width, console.Height)
	for i := 0; i+4 <= len(rgba); i += 4 {
		w.Write(rgba[i : i+3])
	}
	return w.Flush()
}

// writeWAV writes a mono 16-bit PCM WAV file at console.SampleRate. Kept
// on the standard library's encoding/binary deliberately: the pack's only
// audio dependency, gordonklaus/portaudio, streams to a live device and
// has no file-writing surface to reuse here.
func writeWAV(path string, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dataSize := len(samples) * 2
	w := bufio.NewWriter(f)
	w.WriteString("RIFF")
	binary.Write(w, binary.LittleEndian, uint32(36+dataSize))
	w.WriteString("WAVEfmt ")
	binary.Write(w, binary.LittleEndian, uint32(16))
	binary.Write(w, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(w, binary.LittleEndian, uint16(1)) // mono
	binary.Write(w, binary.LittleEndian, uint32(console.SampleRate))
	binary.Write(w, binary.LittleEndian, uint32(console.SampleRate*2))
	binary.Write(w, binary.LittleEndian, uint16(2))
	binary.Write(w, binary.LittleEndian, uint16(16))
	w.WriteString("data")
	binary.Write(w, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		binary.Write(w, binary.LittleEndian, int16(s*32767))
	}
	return w.Flush()
}
