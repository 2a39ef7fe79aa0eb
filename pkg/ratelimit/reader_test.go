package ratelimit

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter(t *testing.T) {
	t.Run("Unlimited", func(t *testing.T) {
		assert.Nil(t, NewLimiter(0))
		assert.Nil(t, NewLimiter(-5))
	})

	t.Run("MinimumBurst", func(t *testing.T) {
		l := NewLimiter(1024)
		require.NotNil(t, l)
		assert.Equal(t, 65536, l.burst)
		assert.Equal(t, int64(1024), l.Rate())
	})

	t.Run("BurstIsOneSecond", func(t *testing.T) {
		l := NewLimiter(1 << 20)
		assert.Equal(t, 1<<20, l.burst)
	})

	t.Run("NilRate", func(t *testing.T) {
		var l *Limiter
		assert.Equal(t, int64(0), l.Rate())
	})
}

func TestNewReader_NoLimiter(t *testing.T) {
	src := bytes.NewReader([]byte("data"))
	assert.Same(t, io.Reader(src), NewReader(context.Background(), src, nil))
}

func TestReaderRead(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 100000)
	r := NewReader(context.Background(), bytes.NewReader(data), NewLimiter(10<<20))

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReaderRead_Throttles(t *testing.T) {
	// 64KB burst then 64KB/s: reading 96KB takes roughly half a second
	data := bytes.Repeat([]byte("y"), 96*1024)
	r := NewReader(context.Background(), bytes.NewReader(data), NewLimiter(64*1024))

	start := time.Now()
	_, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestReaderRead_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReader(ctx, bytes.NewReader([]byte("abc")), NewLimiter(1024))
	_, err := r.Read(make([]byte, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestReadCloser(t *testing.T) {
	tracker := &closeTracker{Reader: bytes.NewReader([]byte("abc"))}
	rc := NewReadCloser(context.Background(), tracker, NewLimiter(4096))

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	require.NoError(t, rc.Close())
	assert.True(t, tracker.closed)

	plain := &closeTracker{Reader: bytes.NewReader(nil)}
	assert.Same(t, io.ReadCloser(plain), NewReadCloser(context.Background(), plain, nil))
}

func TestParseBandwidth(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"10M", 10000000, false},
		{"1MiB", 1 << 20, false},
		{"512KiB", 512 * 1024, false},
		{"fast", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBandwidth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
