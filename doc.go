// Package tuner estimates the pitch of a plucked guitar string and reports
// the nearest string of a reference tuning together with its deviation.
//
// Each tuning round captures a fixed-length buffer of mono samples, computes
// its one-sided magnitude spectrum, picks the highest local maximum and maps
// that frequency to the closest entry of a [NoteTable].
//
// # Quick Start
//
// For a buffer that is already in memory:
//
//	result, err := tuner.Detect(samples, 44100, tuner.StandardTuning())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Detected {
//	    fmt.Printf("%s %+.2f Hz\n", result.Note, result.Deviation)
//	}
//
// For repeated rounds against a live source, wrap the source in a
// [Capturer] and drive a [Session]:
//
//	s, err := tuner.NewSession(tuner.DefaultConfig(), capturer,
//	    tuner.WithPresenter(presenter),
//	    tuner.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for wantAnother() {
//	    if _, err := s.Round(ctx); errors.Is(err, tuner.ErrCapture) {
//	        fmt.Println("check your microphone")
//	    }
//	}
//
// # Pipeline
//
//	samples -> [Analyze] -> Spectrum -> [SelectPeak] -> PeakFrequency -> [NoteTable.Match] -> MatchResult
//
// [Analyze] applies a real FFT (gonum) to the whole buffer and keeps the
// first N/2 bins; bin i sits at i × sampleRate / N Hz. An optional analysis
// window can be selected with [AnalyzeWindowed] or [Config.Window]; the
// default applies none.
//
// [SelectPeak] considers only interior bins that are strictly higher than
// both neighbours. There is no noise floor: any such local maximum is a
// candidate, so very quiet input can still produce a match. Only a spectrum
// without any local maximum, such as digital silence, reports no peak.
//
// [NoteTable.Match] picks the reference with the smallest absolute distance,
// breaking ties by table order, and reports the signed deviation in Hz and
// in cents.
//
// # Errors
//
// [ErrInvalidInput] marks an empty buffer or non-positive sample rate and is
// a programming error. [ErrCapture] marks an environmental failure of the
// capture collaborator so drivers can suggest a different remedy. Neither is
// retried. "No sound detected" is a normal result, not an error.
//
// # Thread Safety
//
// [Analyze], [SelectPeak] and [NoteTable.Match] are pure and safe for
// concurrent use. A [Session] runs one round at a time; overlapping calls to
// [Session.Round] fail with [ErrRoundInProgress].
package tuner
