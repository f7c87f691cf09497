package tuner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Note is a named reference pitch.
type Note struct {
	Name      string
	Frequency float64
}

// standardTuning lists the open strings of a six-string guitar in standard
// EADGBE tuning, lowest first. Order matters: it breaks distance ties.
var standardTuning = []Note{
	{Name: "E2", Frequency: 82.41},
	{Name: "A2", Frequency: 110.00},
	{Name: "D3", Frequency: 146.83},
	{Name: "G3", Frequency: 196.00},
	{Name: "B3", Frequency: 246.94},
	{Name: "E4", Frequency: 329.63},
}

// NoteTable is an immutable, ordered set of reference notes.
// A NoteTable is safe for concurrent use.
type NoteTable struct {
	notes []Note
}

// NewNoteTable builds a table from notes in the given order.
// Names must be unique and non-empty, frequencies positive and finite.
func NewNoteTable(notes ...Note) (*NoteTable, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("%w: note table needs at least one note", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(notes))
	for i, n := range notes {
		if strings.TrimSpace(n.Name) == "" {
			return nil, fmt.Errorf("%w: note %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := seen[n.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate note %q", ErrInvalidConfig, n.Name)
		}
		if !(n.Frequency > 0) || math.IsInf(n.Frequency, 0) {
			return nil, fmt.Errorf("%w: note %q has invalid frequency %v", ErrInvalidConfig, n.Name, n.Frequency)
		}
		seen[n.Name] = struct{}{}
	}

	return &NoteTable{notes: append([]Note(nil), notes...)}, nil
}

// StandardTuning returns the standard guitar tuning E2 A2 D3 G3 B3 E4.
func StandardTuning() *NoteTable {
	return &NoteTable{notes: append([]Note(nil), standardTuning...)}
}

// ParseNoteTable parses a comma-separated list of NAME=HZ pairs, for example
// "E2=82.41,A2=110". Entries keep their listed order.
func ParseNoteTable(s string) (*NoteTable, error) {
	var notes []Note
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("%w: note %q is not NAME=HZ", ErrInvalidConfig, field)
		}
		freq, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: note %q: %w", ErrInvalidConfig, field, err)
		}
		notes = append(notes, Note{Name: strings.TrimSpace(name), Frequency: freq})
	}
	return NewNoteTable(notes...)
}

// Len returns the number of notes.
func (t *NoteTable) Len() int {
	return len(t.notes)
}

// Notes returns a copy of the notes in table order.
func (t *NoteTable) Notes() []Note {
	return append([]Note(nil), t.notes...)
}

// Lookup returns the note with the given name.
func (t *NoteTable) Lookup(name string) (Note, bool) {
	for _, n := range t.notes {
		if n.Name == name {
			return n, true
		}
	}
	return Note{}, false
}

// String formats the table in the form accepted by ParseNoteTable.
func (t *NoteTable) String() string {
	parts := make([]string, len(t.notes))
	for i, n := range t.notes {
		parts[i] = n.Name + "=" + strconv.FormatFloat(n.Frequency, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Nearest returns the note whose frequency is closest to freq.
// Equidistant notes resolve to the one listed first.
func (t *NoteTable) Nearest(freq float64) Note {
	best := t.notes[0]
	bestDist := math.Abs(best.Frequency - freq)
	for _, n := range t.notes[1:] {
		if d := math.Abs(n.Frequency - freq); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// Match maps a detected peak to the nearest note.
// An invalid peak yields a result with Note set to NoSoundDetected and
// Detected false.
func (t *NoteTable) Match(p PeakFrequency) MatchResult {
	if !p.Valid {
		return MatchResult{Note: NoSoundDetected}
	}

	n := t.Nearest(p.Hz)
	return MatchResult{
		Note:      n.Name,
		Reference: n.Frequency,
		Frequency: p.Hz,
		Deviation: p.Hz - n.Frequency,
		Cents:     cents(p.Hz, n.Frequency),
		Detected:  true,
	}
}

// cents returns the interval from ref to freq in cents. A non-positive freq
// (the DC bin) has no defined interval and reports zero.
func cents(freq, ref float64) float64 {
	if freq <= 0 {
		return 0
	}
	return centsPerOctave * math.Log2(freq/ref)
}
