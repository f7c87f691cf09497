package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tuner "github.com/tphakala/go-guitar-tuner"
	"github.com/tphakala/go-guitar-tuner/internal/logging"
)

// Environment variables consulted when the matching flag is not given.
const (
	envSampleRate = "TUNER_SAMPLE_RATE"
	envDuration   = "TUNER_DURATION"
	envLogLevel   = "TUNER_LOG_LEVEL"
)

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = string(logging.FormatConsole)
)

// options holds the parsed command line.
type options struct {
	input     string
	rate      float64
	rateSet   bool
	duration  time.Duration
	window    string
	notes     string
	timeout   time.Duration
	logLevel  string
	logFormat string
	verbose   bool
}

// parseOptions parses args (without the program name). getenv supplies
// environment fallbacks and is os.Getenv outside tests.
func parseOptions(args []string, getenv func(string) string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("tuner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "in", "", "Analyse successive windows of a WAV file instead of the microphone")
	fs.Float64Var(&opts.rate, "rate", envOrFloat(getenv, envSampleRate, tuner.DefaultSampleRate), "Capture sample rate in Hz")
	fs.DurationVar(&opts.duration, "duration", envOrDuration(getenv, envDuration, tuner.DefaultDuration), "Audio captured per round")
	fs.StringVar(&opts.window, "window", "rectangular", "Analysis window: rectangular, hann, hamming, blackman, bartlett, kaiser")
	fs.StringVar(&opts.notes, "notes", "", "Reference notes as NAME=Hz,... (default standard tuning)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Abort a capture that takes longer than this (0 waits forever)")
	fs.StringVar(&opts.logLevel, "log-level", envOr(getenv, envLogLevel, defaultLogLevel), "Log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", defaultLogFormat, "Log format: console, json")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tuner [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  %s, %s, %s\n", envSampleRate, envDuration, envLogLevel)
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  tuner                          # Tune from the default microphone\n")
		fmt.Fprintf(stderr, "  tuner -window hann -v          # Hann window, verbose logging\n")
		fmt.Fprintf(stderr, "  tuner -in string.wav           # Tune from a recording\n")
		fmt.Fprintf(stderr, "  tuner -notes D2=73.42,A2=110   # Custom reference notes\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if getenv(envSampleRate) != "" {
		opts.rateSet = true
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "rate" {
			opts.rateSet = true
		}
	})

	if opts.verbose && opts.logLevel == defaultLogLevel {
		opts.logLevel = "debug"
	}

	return opts, nil
}

// config builds the tuner configuration from the parsed options.
func (o *options) config() (*tuner.Config, error) {
	cfg := tuner.DefaultConfig()
	cfg.SampleRate = o.rate
	cfg.Duration = o.duration
	cfg.CaptureTimeout = o.timeout

	w, err := tuner.ParseWindow(o.window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tuner.ErrInvalidConfig, err)
	}
	cfg.Window = w

	if o.notes != "" {
		table, err := tuner.ParseNoteTable(o.notes)
		if err != nil {
			return nil, err
		}
		cfg.Notes = table
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(getenv func(string) string, k, def string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return def
}

func envOrFloat(getenv func(string) string, k string, def float64) float64 {
	if v := getenv(k); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func envOrDuration(getenv func(string) string, k string, def time.Duration) time.Duration {
	if v := getenv(k); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
		// Bare numbers are seconds.
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return time.Duration(f * float64(time.Second))
		}
	}
	return def
}

// isHelp reports whether err came from -h or -help.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
