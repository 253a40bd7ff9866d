package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestNewLimiterDisabled(t *testing.T) {
	if NewLimiter(0) != nil {
		t.Error("zero budget should disable limiting")
	}
	if NewLimiter(-100) != nil {
		t.Error("negative budget should disable limiting")
	}
}

func TestNewReaderPassthrough(t *testing.T) {
	src := strings.NewReader("data")
	if r := NewReader(context.Background(), src, nil); r != src {
		t.Error("nil limiter should return the reader unchanged")
	}
}

func TestReaderDeliversAllBytes(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 10000)
	limiter := NewLimiter(1 << 20)

	r := NewReader(context.Background(), bytes.NewReader(content), limiter)
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("got %d bytes, want %d, content must pass through intact", len(data), len(content))
	}
}

// The bucket caps a single grant, so one Read never exceeds the burst
func TestReaderGrantBounded(t *testing.T) {
	limiter := NewLimiter(1024)
	limiter.tokens = 10

	r := NewReader(context.Background(), strings.NewReader("0123456789abcdef"), limiter)
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if n > 10 {
		t.Errorf("read %d bytes with only 10 tokens available", n)
	}
}

func TestReaderCancelledContext(t *testing.T) {
	limiter := NewLimiter(1024)
	limiter.tokens = 0
	limiter.lastRefill = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReader(ctx, strings.NewReader("data"), limiter)
	if _, err := r.Read(make([]byte, 4)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLimiterRefills(t *testing.T) {
	limiter := NewLimiter(1 << 20)
	limiter.tokens = 0
	limiter.lastRefill = time.Now().Add(-time.Second)

	granted, wait := limiter.take(1024)
	if granted == 0 {
		t.Errorf("expected tokens after a second of refill, wait = %v", wait)
	}
}
