package capture

// sampleRing is a growable circular FIFO of mono samples. Decoded audio is
// written in chunks that rarely line up with capture windows; the remainder
// of one chunk stays queued for the next window.
//
// sampleRing is not safe for concurrent use; owners hold their own lock.
type sampleRing struct {
	data     []float64
	size     int
	readPos  int
	writePos int
}

// newSampleRing creates a ring with room for capacity samples.
func newSampleRing(capacity int) *sampleRing {
	return &sampleRing{data: make([]float64, max(capacity, 1))}
}

// Len returns the number of queued samples.
func (r *sampleRing) Len() int { return r.size }

// Cap returns the current capacity.
func (r *sampleRing) Cap() int { return len(r.data) }

// Write appends samples, growing the ring if needed.
func (r *sampleRing) Write(samples []float64) {
	if len(samples) == 0 {
		return
	}
	if r.size+len(samples) > len(r.data) {
		r.grow(r.size + len(samples))
	}

	n := copy(r.data[r.writePos:], samples)
	copy(r.data, samples[n:])
	r.writePos = (r.writePos + len(samples)) % len(r.data)
	r.size += len(samples)
}

// ReadInto moves up to len(dst) samples into dst and returns the count.
func (r *sampleRing) ReadInto(dst []float64) int {
	n := min(len(dst), r.size)
	if n == 0 {
		return 0
	}

	first := copy(dst[:n], r.data[r.readPos:])
	copy(dst[first:n], r.data)
	r.readPos = (r.readPos + n) % len(r.data)
	r.size -= n
	return n
}

// Reset drops all queued samples.
func (r *sampleRing) Reset() {
	r.size, r.readPos, r.writePos = 0, 0, 0
}

// grow doubles the capacity until it holds at least minCapacity samples,
// keeping the queued samples in order.
func (r *sampleRing) grow(minCapacity int) {
	newCap := len(r.data)
	for newCap < minCapacity {
		newCap *= ringGrowthFactor
	}

	size := r.size
	data := make([]float64, newCap)
	r.ReadInto(data[:size])

	r.data = data
	r.readPos = 0
	r.writePos = size
	r.size = size
}
