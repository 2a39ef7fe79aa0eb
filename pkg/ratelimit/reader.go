package ratelimit

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// Limiter caps the number of bytes per second read through wrapped readers.
// A single Limiter may be shared by every reader of a run.
type Limiter struct {
	limiter *rate.Limiter
	burst   int
}

// NewLimiter creates a limiter for the given rate. Returns nil (no limiting) when
// bytesPerSecond is not positive.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// Burst is one second worth of data, 64KB minimum for smooth reads
	burst := bytesPerSecond
	if burst < 65536 {
		burst = 65536
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), int(burst)),
		burst:   int(burst),
	}
}

// Rate returns the configured bytes per second
func (l *Limiter) Rate() int64 {
	if l == nil {
		return 0
	}
	return int64(l.limiter.Limit())
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps an io.Reader with rate limiting
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{reader: reader, limiter: limiter, ctx: ctx}
}

// Read reads at most one burst and waits until the limiter allows the bytes read
func (r *Reader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	if len(p) > r.limiter.burst {
		p = p[:r.limiter.burst]
	}

	n, err := r.reader.Read(p)
	if n > 0 {
		if werr := r.limiter.limiter.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

// ReadCloser wraps an io.ReadCloser with rate limiting
type ReadCloser struct {
	Reader
	closer io.Closer
}

// NewReadCloser wraps an io.ReadCloser with rate limiting
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &ReadCloser{
		Reader: Reader{reader: rc, limiter: limiter, ctx: ctx},
		closer: rc,
	}
}

// Close implements io.Closer
func (rc *ReadCloser) Close() error {
	return rc.closer.Close()
}

// ParseBandwidth parses a human bandwidth such as "10M", "512KiB" or "1G" into
// bytes per second. An empty string or "0" means unlimited.
func ParseBandwidth(s string) (int64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth %q: %w", s, err)
	}
	return int64(n), nil
}
