package digest

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sync"

	"github.com/sdejongh/sortnorris/pkg/models"
	"github.com/sdejongh/sortnorris/pkg/storage"
)

// DefaultBlockSize is the read size used when none is configured
const DefaultBlockSize = 4096

// ReaderWrapper wraps every opened file (e.g., for rate limiting)
type ReaderWrapper func(io.ReadCloser) io.ReadCloser

// Hasher computes content fingerprints by streaming files in fixed-size blocks.
// Memory use is one pooled block per concurrent Digest call regardless of file size.
type Hasher struct {
	algorithm     models.HashAlgorithm
	newHash       func() hash.Hash
	blockSize     int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// New creates a hasher for the given algorithm
func New(algorithm models.HashAlgorithm, blockSize int) (*Hasher, error) {
	var newHash func() hash.Hash
	switch algorithm {
	case models.HashSHA256, "":
		algorithm = models.HashSHA256
		newHash = sha256.New
	case models.HashMD5:
		newHash = md5.New
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s (use: sha256, md5)", algorithm)
	}

	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	return &Hasher{
		algorithm: algorithm,
		newHash:   newHash,
		blockSize: blockSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, blockSize)
				return &buf
			},
		},
	}, nil
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (h *Hasher) SetReaderWrapper(wrapper ReaderWrapper) {
	h.readerWrapper = wrapper
}

// Algorithm returns the configured algorithm
func (h *Hasher) Algorithm() models.HashAlgorithm {
	return h.algorithm
}

// BlockSize returns the read block size in bytes
func (h *Hasher) BlockSize() int {
	return h.blockSize
}

// Digest returns the hex fingerprint of the file at path
func (h *Hasher) Digest(ctx context.Context, backend storage.Backend, path string) (string, error) {
	reader, err := backend.Open(ctx, path)
	if err != nil {
		return "", err
	}
	if h.readerWrapper != nil {
		reader = h.readerWrapper(reader)
	}
	defer reader.Close()

	hasher := h.newHash()

	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Same reports whether the files at a and b have identical fingerprints
func (h *Hasher) Same(ctx context.Context, backend storage.Backend, a, b string) (bool, error) {
	da, err := h.Digest(ctx, backend, a)
	if err != nil {
		return false, err
	}
	db, err := h.Digest(ctx, backend, b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}
