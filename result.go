package tuner

// PeakFrequency is an optional dominant frequency.
// Valid is false when the spectrum had no local maximum; the other fields
// are then zero.
type PeakFrequency struct {
	// Hz is the centre frequency of the peak bin, in [0, Nyquist).
	Hz float64

	// Magnitude is the spectral magnitude at the peak bin.
	Magnitude float64

	// Bin is the index of the peak in the spectrum.
	Bin int

	Valid bool
}

// PeakAt returns a valid PeakFrequency at hz with no bin information.
func PeakAt(hz float64) PeakFrequency {
	return PeakFrequency{Hz: hz, Valid: true}
}

// MatchResult is the outcome of one tuning round.
//
// When Detected is false, Note is NoSoundDetected and Reference, Frequency,
// Deviation and Cents carry no meaning.
type MatchResult struct {
	// Note is the label of the nearest reference note.
	Note string

	// Reference is the frequency of Note in Hz.
	Reference float64

	// Frequency is the detected peak frequency in Hz.
	Frequency float64

	// Deviation is Frequency - Reference in Hz.
	// Positive values are sharp, negative values flat.
	Deviation float64

	// Cents is the same deviation expressed in cents.
	Cents float64

	Detected bool
}
