// Command tuner detects the note played on a guitar string.
//
// Usage:
//
//	tuner                         # Record from the default microphone
//	tuner -window hann            # Apply a Hann window before the FFT
//	tuner -in recording.wav       # Tune successive windows of a WAV file
//
// In microphone mode each round records -duration of audio, reports the
// nearest reference note and asks whether to tune another string.
// Microphone capture needs a binary built with -tags portaudio.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tphakala/simd/cpu"
	"go.uber.org/zap"

	tuner "github.com/tphakala/go-guitar-tuner"
	"github.com/tphakala/go-guitar-tuner/internal/capture"
	"github.com/tphakala/go-guitar-tuner/internal/logging"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()

	switch {
	case err == nil, isHelp(err):
		os.Exit(exitOK)
	default:
		fmt.Fprintln(os.Stderr, "tuner:", err)
		os.Exit(exitFailure)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	opts, err := parseOptions(args, getenv, stderr)
	if err != nil {
		return err
	}

	logger, err := logging.New(opts.logLevel, logging.Format(opts.logFormat))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if opts.verbose {
		logger.Debug("cpu features", zap.String("simd", cpu.Info()))
	}

	presenter := &textPresenter{w: stdout, cents: opts.verbose}

	if opts.input != "" {
		return runFile(ctx, opts, presenter, logger)
	}
	return runInteractive(ctx, opts, presenter, logger, stdin, stdout)
}

// runInteractive records from the default input device until the user
// declines another round.
func runInteractive(ctx context.Context, opts *options, p tuner.Presenter, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	device, err := capture.OpenDevice()
	if err != nil {
		return err
	}
	defer func() { _ = device.Close() }()

	return interactiveLoop(ctx, cfg, device, p, logger, stdin, stdout)
}

// interactiveLoop runs rounds against c, prompting between them.
func interactiveLoop(ctx context.Context, cfg *tuner.Config, c tuner.Capturer, p tuner.Presenter, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	session, err := tuner.NewSession(cfg, &noticeCapturer{next: c, w: stdout},
		tuner.WithPresenter(p), tuner.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("tuner ready",
		zap.Float64("sample_rate", cfg.SampleRate),
		zap.Duration("duration", cfg.Duration),
		zap.Stringer("window", cfg.Window),
		zap.Stringer("notes", cfg.Notes))

	in := bufio.NewReader(stdin)
	for {
		if _, err := session.Round(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(stdout, describeError(err))
		}

		fmt.Fprint(stdout, msgAnotherString)
		line, err := in.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			stats := session.Stats()
			logger.Info("session finished",
				zap.Int("rounds", stats.Rounds),
				zap.Int("detections", stats.Detections),
				zap.Int("no_sound", stats.NoSound))
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			return nil
		}
	}
}

// runFile tunes each full window of a WAV file in order.
func runFile(ctx context.Context, opts *options, p tuner.Presenter, logger *zap.Logger) error {
	src, err := capture.OpenWAV(opts.input)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if !opts.rateSet {
		opts.rate = float64(src.SampleRate())
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}

	logger.Info("analysing file",
		zap.String("path", src.Path()),
		zap.Int("sample_rate", src.SampleRate()),
		zap.Int("channels", src.Channels()),
		zap.Int("bit_depth", src.BitDepth()),
		zap.Duration("length", src.Duration()))

	return fileLoop(ctx, cfg, src, p, logger)
}

// fileLoop runs rounds until c is exhausted.
func fileLoop(ctx context.Context, cfg *tuner.Config, c tuner.Capturer, p tuner.Presenter, logger *zap.Logger) error {
	session, err := tuner.NewSession(cfg, c, tuner.WithPresenter(p), tuner.WithLogger(logger))
	if err != nil {
		return err
	}

	for {
		_, err := session.Round(ctx)
		if errors.Is(err, capture.ErrExhausted) {
			break
		}
		if err != nil {
			return err
		}
	}

	stats := session.Stats()
	// The final round is the one that found the source exhausted.
	if stats.Rounds <= 1 {
		return fmt.Errorf("input shorter than one %v window", cfg.Duration)
	}

	logger.Info("file finished",
		zap.Int("windows", stats.Rounds-1),
		zap.Int("detections", stats.Detections),
		zap.Int("no_sound", stats.NoSound))
	return nil
}
