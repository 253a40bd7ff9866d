// Package ratelimit provides a bandwidth-limited io.Reader used to
// bound how fast content comparison reads file data.
package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// Limiter is a token bucket shared by all readers of one run, so the
// configured limit applies to aggregate throughput.
type Limiter struct {
	bytesPerSecond int64
	bucketSize     int64

	mu         sync.Mutex
	tokens     int64
	lastRefill time.Time
}

// NewLimiter creates a limiter for the given bytes-per-second budget.
// A non-positive budget returns nil, meaning no limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second of burst, with a floor so tiny budgets still make progress
	bucketSize := bytesPerSecond
	if bucketSize < 65536 {
		bucketSize = 65536
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		bucketSize:     bucketSize,
		tokens:         bucketSize,
		lastRefill:     time.Now(),
	}
}

// take consumes up to n tokens and returns how many were granted along
// with how long the caller should wait before retrying when none were.
func (l *Limiter) take(n int64) (granted int64, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastRefill)
	l.lastRefill = now

	l.tokens += int64(elapsed.Seconds() * float64(l.bytesPerSecond))
	if l.tokens > l.bucketSize {
		l.tokens = l.bucketSize
	}

	if l.tokens <= 0 {
		// Time until at least one token accrues
		return 0, time.Duration(float64(time.Second) / float64(l.bytesPerSecond))
	}

	granted = n
	if granted > l.tokens {
		granted = l.tokens
	}
	l.tokens -= granted
	return granted, 0
}

// Reader wraps an io.Reader with the limiter
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps a reader. A nil limiter returns the reader unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{
		reader:  reader,
		limiter: limiter,
		ctx:     ctx,
	}
}

// Read implements io.Reader, blocking until the limiter grants tokens
func (r *Reader) Read(p []byte) (int, error) {
	for {
		select {
		case <-r.ctx.Done():
			return 0, r.ctx.Err()
		default:
		}

		granted, wait := r.limiter.take(int64(len(p)))
		if granted > 0 {
			return r.reader.Read(p[:granted])
		}

		select {
		case <-r.ctx.Done():
			return 0, r.ctx.Err()
		case <-time.After(wait):
		}
	}
}
