package audio

import (
	"encoding/binary"
	"sync"
)

// Sample is a PCM sample type the ring buffer can hold.
type Sample interface {
	~int16 | ~int32 | ~float32
}

// RingBuffer is a thread-safe circular buffer of the most recent samples,
// used to feed level meters while recording.
type RingBuffer[S Sample] struct {
	mu      sync.RWMutex
	samples []S
	head    int // next write position
	count   int // valid samples, up to capacity
}

// NewRingBuffer creates a ring buffer holding up to capacity samples.
func NewRingBuffer[S Sample](capacity int) *RingBuffer[S] {
	if capacity < 1 {
		capacity = 1
	}

	return &RingBuffer[S]{samples: make([]S, capacity)}
}

// Write appends samples, overwriting the oldest once full.
func (b *RingBuffer[S]) Write(samples []S) {
	if len(samples) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.samples)

	// Only the tail that fits can survive the write.
	if len(samples) > capacity {
		samples = samples[len(samples)-capacity:]
	}

	for _, s := range samples {
		b.samples[b.head] = s
		b.head = (b.head + 1) % capacity
	}

	b.count = min(b.count+len(samples), capacity)
}

// Recent returns up to n of the most recent samples, oldest first.
func (b *RingBuffer[S]) Recent(n int) []S {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 || n <= 0 {
		return nil
	}

	n = min(n, b.count)
	capacity := len(b.samples)
	start := (b.head - n + capacity) % capacity

	out := make([]S, n)
	for i := range out {
		out[i] = b.samples[(start+i)%capacity]
	}

	return out
}

// Len returns the number of valid samples in the buffer.
func (b *RingBuffer[S]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.count
}

// Reset discards all samples.
func (b *RingBuffer[S]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.head = 0
	b.count = 0
}

// BytesToInt16 converts S16LE bytes to samples. A trailing odd byte is ignored.
func BytesToInt16(data []byte) []int16 {
	n := len(data) / 2
	if n == 0 {
		return nil
	}

	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}

	return samples
}
