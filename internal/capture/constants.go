package capture

// Channel constants
const (
	monoChannels = 1
)

// PCM sample formats
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV format tag for integer PCM
	wavFormatPCM = 1
)

// I/O sizing
const (
	// readChunkFrames is the number of frames decoded per PCMBuffer call.
	readChunkFrames = 65536

	// deviceFramesPerBuffer is the PortAudio host buffer size in frames.
	deviceFramesPerBuffer = 2048

	// ringGrowthFactor is the capacity multiplier when a sampleRing fills.
	ringGrowthFactor = 2
)
