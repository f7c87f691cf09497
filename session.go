package tuner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Capturer supplies one buffer of mono samples per call.
// Implementations block until duration × sampleRate samples are available,
// ctx is done, or the device fails.
type Capturer interface {
	Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error)
}

// CapturerFunc adapts an ordinary function to the Capturer interface.
type CapturerFunc func(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error)

// Capture calls f(ctx, duration, sampleRate).
func (f CapturerFunc) Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error) {
	return f(ctx, duration, sampleRate)
}

// Presenter receives the result of every successful round.
type Presenter interface {
	Present(MatchResult)
}

// PresenterFunc adapts an ordinary function to the Presenter interface.
type PresenterFunc func(MatchResult)

// Present calls f(r).
func (f PresenterFunc) Present(r MatchResult) {
	f(r)
}

// State is the phase of a Session.
type State int32

const (
	// StateIdle means the session is waiting for the next round.
	StateIdle State = iota

	// StateMeasuring means a round is capturing or analysing.
	StateMeasuring
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMeasuring:
		return "measuring"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Stats counts round outcomes over the life of a Session.
type Stats struct {
	Rounds           int
	Detections       int
	NoSound          int
	CaptureFailures  int
	AnalysisFailures int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for round diagnostics.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPresenter sets the collaborator that receives each MatchResult.
func WithPresenter(p Presenter) SessionOption {
	return func(s *Session) {
		s.presenter = p
	}
}

// Session drives tuning rounds: capture one buffer, analyse it, select the
// dominant peak and match it against the note table.
//
// A round moves the session from StateIdle to StateMeasuring and back to
// StateIdle once it finishes, successfully or not. Rounds are meant to be
// issued one at a time by a single driver; a concurrent call fails with
// ErrRoundInProgress instead of blocking.
type Session struct {
	config    Config
	notes     *NoteTable
	capturer  Capturer
	presenter Presenter
	logger    *zap.Logger

	state atomic.Int32

	mu    sync.Mutex
	stats Stats
}

// NewSession creates a session capturing from c. The configuration is
// copied; later changes to config have no effect.
func NewSession(config *Config, c Capturer, opts ...SessionOption) (*Session, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if c == nil {
		return nil, fmt.Errorf("%w: capturer is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		config:   *config,
		notes:    config.notes(),
		capturer: c,
		logger:   zap.NewNop(),
	}
	s.config.Notes = s.notes

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Config returns a copy of the session configuration.
func (s *Session) Config() Config {
	return s.config
}

// State returns the current phase of the session.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Stats returns a snapshot of the round counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Round runs one capture → analyse → select → match cycle.
//
// A capture failure, including a buffer of the wrong length, returns an
// error wrapping ErrCapture. An analysis failure returns an error wrapping
// ErrInvalidInput. In both cases no MatchResult is produced and the
// presenter is not called. Silence is not an error: it yields a result with
// Detected false.
func (s *Session) Round(ctx context.Context) (MatchResult, error) {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateMeasuring)) {
		return MatchResult{}, ErrRoundInProgress
	}
	defer s.state.Store(int32(StateIdle))

	start := time.Now()
	want := s.config.BufferLength()

	samples, err := s.capture(ctx)
	if err != nil {
		s.count(func(st *Stats) { st.CaptureFailures++ })
		s.logger.Warn("capture failed", zap.Error(err))
		return MatchResult{}, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	if len(samples) != want {
		s.count(func(st *Stats) { st.CaptureFailures++ })
		s.logger.Warn("capture returned wrong buffer length",
			zap.Int("want", want), zap.Int("got", len(samples)))
		return MatchResult{}, fmt.Errorf("%w: expected %d samples, got %d", ErrCapture, want, len(samples))
	}

	spec, err := AnalyzeWindowed(samples, s.config.SampleRate, s.config.Window)
	if err != nil {
		s.count(func(st *Stats) { st.AnalysisFailures++ })
		s.logger.Error("analysis failed", zap.Error(err))
		return MatchResult{}, err
	}

	p := SelectPeak(spec)
	result := s.notes.Match(p)

	s.count(func(st *Stats) {
		if result.Detected {
			st.Detections++
		} else {
			st.NoSound++
		}
	})

	if result.Detected {
		s.logger.Debug("round complete",
			zap.String("note", result.Note),
			zap.Float64("frequency", result.Frequency),
			zap.Float64("deviation", result.Deviation),
			zap.Int("bin", p.Bin),
			zap.Float64("magnitude", p.Magnitude),
			zap.Duration("elapsed", time.Since(start)))
	} else {
		s.logger.Debug("round complete, no peak", zap.Duration("elapsed", time.Since(start)))
	}

	if s.presenter != nil {
		s.presenter.Present(result)
	}

	return result, nil
}

// capture obtains one buffer, bounded by CaptureTimeout when set.
func (s *Session) capture(ctx context.Context) ([]float64, error) {
	if s.config.CaptureTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.CaptureTimeout)
		defer cancel()
	}
	return s.capturer.Capture(ctx, s.config.Duration, s.config.SampleRate)
}

// count applies fn to the stats and bumps the round counter.
func (s *Session) count(fn func(*Stats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Rounds++
	fn(&s.stats)
}
