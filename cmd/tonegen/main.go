// Command tonegen writes a reference tone to a WAV file.
//
// Usage:
//
//	tonegen -note A2 a2.wav                     # 110 Hz for two seconds
//	tonegen -freq 108 -duration 5s flat-a.wav   # A slightly flat A string
//	tonegen -note E2 -harmonics 0.5,0.25 e2.wav # Fundamental plus overtones
//
// The files are mono integer PCM and can be fed back to tuner -in.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	tuner "github.com/tphakala/go-guitar-tuner"
	"github.com/tphakala/go-guitar-tuner/internal/capture"
)

const (
	defaultAmplitude = 0.5
	defaultBitDepth  = 16
	minRequiredArgs  = 1
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("tonegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	note := fs.String("note", "", "Reference note name from -notes (e.g. E2, A2)")
	freq := fs.Float64("freq", 0, "Tone frequency in Hz (overrides -note)")
	notes := fs.String("notes", "", "Reference notes as NAME=Hz,... (default standard tuning)")
	rate := fs.Int("rate", int(tuner.DefaultSampleRate), "Sample rate in Hz")
	duration := fs.Duration("duration", tuner.DefaultDuration, "Tone length")
	bits := fs.Int("bits", defaultBitDepth, "Bit depth: 16, 24, 32")
	amplitude := fs.Float64("amplitude", defaultAmplitude, "Fundamental amplitude in (0, 1]")
	harmonics := fs.String("harmonics", "", "Overtone amplitudes for 2x, 3x, ... as a comma list")
	noise := fs.Float64("noise", 0, "Peak amplitude of added uniform noise")
	seed := fs.Int64("seed", 1, "Noise seed")
	verbose := fs.Bool("v", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tonegen [options] output.wav\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return fmt.Errorf("insufficient arguments")
	}
	outputPath := fs.Arg(0)

	hz, err := resolveFrequency(*freq, *note, *notes)
	if err != nil {
		return err
	}

	overtones, err := parseHarmonics(*harmonics)
	if err != nil {
		return err
	}

	tone := &capture.Tone{
		Frequency: hz,
		Amplitude: *amplitude,
		Harmonics: overtones,
		Noise:     *noise,
		Seed:      *seed,
	}

	samples, err := tone.Capture(context.Background(), *duration, float64(*rate))
	if err != nil {
		return err
	}

	if err := capture.WriteWAV(outputPath, samples, *rate, *bits); err != nil {
		return err
	}

	if *verbose {
		log.Printf("Output: %s", outputPath)
		log.Printf("Tone: %.2f Hz, amplitude %.2f, %d overtones", hz, *amplitude, len(overtones))
		log.Printf("Format: %d Hz, %d-bit, %v (%d samples)", *rate, *bits, duration.Round(time.Millisecond), len(samples))
		log.Printf("RMS: %.4f", capture.RMS(samples))
	}
	return nil
}

// resolveFrequency picks the explicit frequency or looks the note up.
func resolveFrequency(freq float64, note, notes string) (float64, error) {
	if freq > 0 {
		return freq, nil
	}
	if freq < 0 {
		return 0, fmt.Errorf("frequency must be positive, got %v", freq)
	}
	if note == "" {
		return 0, errors.New("one of -note or -freq is required")
	}

	table := tuner.StandardTuning()
	if notes != "" {
		var err error
		if table, err = tuner.ParseNoteTable(notes); err != nil {
			return 0, err
		}
	}

	n, ok := table.Lookup(note)
	if !ok {
		return 0, fmt.Errorf("unknown note %q (known: %s)", note, table)
	}
	return n.Frequency, nil
}

// parseHarmonics parses "0.5,0.25" into overtone amplitudes.
func parseHarmonics(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid harmonic amplitude %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
