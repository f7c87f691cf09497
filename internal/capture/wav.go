package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVFile serves consecutive capture windows from a PCM WAV file.
// Multi-channel files are averaged down to mono.
type WAVFile struct {
	mu sync.Mutex

	file     *os.File
	decoder  *wav.Decoder
	path     string
	rate     int
	channels int
	bitDepth int
	duration time.Duration

	buf     *audio.IntBuffer
	mono    []float64
	pending *sampleRing
	eof     bool
}

// OpenWAV opens and validates a WAV file.
func OpenWAV(path string) (*WAVFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		_ = f.Close()
		return nil, fmt.Errorf("unsupported bit depth %d in %s", bitDepth, path)
	}

	if format.NumChannels < monoChannels {
		_ = f.Close()
		return nil, fmt.Errorf("invalid channel count %d in %s", format.NumChannels, path)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &WAVFile{
		file:     f,
		decoder:  decoder,
		path:     path,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		duration: duration,
		buf: &audio.IntBuffer{
			Data:   make([]int, readChunkFrames*format.NumChannels),
			Format: format,
		},
		mono:    make([]float64, readChunkFrames),
		pending: newSampleRing(readChunkFrames),
	}, nil
}

// Path returns the file path.
func (w *WAVFile) Path() string { return w.path }

// SampleRate returns the file sample rate in Hz.
func (w *WAVFile) SampleRate() int { return w.rate }

// Channels returns the file channel count.
func (w *WAVFile) Channels() int { return w.channels }

// BitDepth returns the PCM bit depth.
func (w *WAVFile) BitDepth() int { return w.bitDepth }

// Duration returns the file duration, or zero if the header does not say.
func (w *WAVFile) Duration() time.Duration { return w.duration }

// Capture returns the next duration × sampleRate mono samples.
// sampleRate must equal the file rate. Once fewer samples remain than a
// window needs, Capture returns ErrExhausted.
func (w *WAVFile) Capture(ctx context.Context, duration time.Duration, sampleRate float64) ([]float64, error) {
	n, err := BufferLength(duration, sampleRate)
	if err != nil {
		return nil, err
	}

	if sampleRate != float64(w.rate) {
		return nil, fmt.Errorf("%w: file is %d Hz, requested %v Hz", ErrRateMismatch, w.rate, sampleRate)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for w.pending.Len() < n && !w.eof {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.decodeChunk(); err != nil {
			return nil, err
		}
	}

	if w.pending.Len() < n {
		return nil, fmt.Errorf("%w: %s has %d samples left, need %d", ErrExhausted, w.path, w.pending.Len(), n)
	}

	out := make([]float64, n)
	w.pending.ReadInto(out)
	return out, nil
}

// decodeChunk queues one chunk of decoded mono samples.
func (w *WAVFile) decodeChunk() error {
	w.buf.Data = w.buf.Data[:cap(w.buf.Data)]
	n, err := w.decoder.PCMBuffer(w.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read audio data: %w", err)
	}
	if n == 0 {
		w.eof = true
		return nil
	}

	frames := n / w.channels
	downmixInto(w.mono[:frames], w.buf.Data[:n], w.channels, frames, w.bitDepth)
	w.pending.Write(w.mono[:frames])
	return nil
}

// Close closes the underlying file.
func (w *WAVFile) Close() error {
	return w.file.Close()
}

// WriteWAV writes mono samples in [-1, 1] to path as integer PCM.
// Samples outside that range are clipped.
func WriteWAV(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	scale := maxValue(bitDepth)
	data := make([]int, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		data[i] = int(math.Round(v * scale))
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, monoChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}
