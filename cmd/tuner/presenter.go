package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tuner "github.com/tphakala/go-guitar-tuner"
	"github.com/tphakala/go-guitar-tuner/internal/capture"
)

// Messages shown to the user.
const (
	msgRecording      = "Recording..."
	msgRecordingDone  = "Recording complete."
	msgNoPeak         = "No valid peak detected. Please try again."
	msgAnotherString  = "Tune another string? (y/n): "
	msgCaptureFailed  = "Could not record audio, check your microphone/input: %v"
	msgInternalError  = "Internal error: %v"
	msgDetectedFormat = "Detected Note: %s, Frequency: %.2f Hz, Difference: %.2f Hz"
)

// textPresenter prints one line per round.
type textPresenter struct {
	w     io.Writer
	cents bool
}

// Present implements tuner.Presenter.
func (p *textPresenter) Present(r tuner.MatchResult) {
	if !r.Detected {
		fmt.Fprintln(p.w, msgNoPeak)
		return
	}

	fmt.Fprintf(p.w, msgDetectedFormat, r.Note, r.Frequency, r.Deviation)
	if p.cents {
		fmt.Fprintf(p.w, " (%+.1f cents)", r.Cents)
	}
	fmt.Fprintln(p.w)
}

// noticeCapturer prints recording notices around each capture.
type noticeCapturer struct {
	next tuner.Capturer
	w    io.Writer
}

// Capture implements tuner.Capturer.
func (c *noticeCapturer) Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error) {
	fmt.Fprintln(c.w, msgRecording)
	samples, err := c.next.Capture(ctx, duration, sampleRate)
	if err == nil {
		fmt.Fprintln(c.w, msgRecordingDone)
	}
	return samples, err
}

// describeError turns a round failure into a message for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, tuner.ErrCapture), errors.Is(err, capture.ErrDeviceUnavailable):
		return fmt.Sprintf(msgCaptureFailed, err)
	default:
		return fmt.Sprintf(msgInternalError, err)
	}
}
