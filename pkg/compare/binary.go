package compare

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mdewilde/treecomp/pkg/storage"
)

// BinaryEquivalencer compares files byte by byte with streamed,
// pooled buffers so large files never load fully into memory.
type BinaryEquivalencer struct {
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewBinaryEquivalencer creates a raw byte-equality policy
func NewBinaryEquivalencer(bufferSize int) *BinaryEquivalencer {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &BinaryEquivalencer{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (e *BinaryEquivalencer) SetReaderWrapper(wrapper ReaderWrapper) {
	e.readerWrapper = wrapper
}

// Equivalent reports whether both files hold identical bytes. Sizes are
// checked first so most non-equivalent pairs never get read.
func (e *BinaryEquivalencer) Equivalent(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (bool, error) {
	leftInfo, err := left.Stat(ctx, leftPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat left file: %w", err)
	}
	rightInfo, err := right.Stat(ctx, rightPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat right file: %w", err)
	}

	if leftInfo.Size != rightInfo.Size {
		return false, nil
	}

	leftReader, err := left.Read(ctx, leftPath)
	if err != nil {
		return false, fmt.Errorf("failed to open left file: %w", err)
	}
	defer leftReader.Close()

	rightReader, err := right.Read(ctx, rightPath)
	if err != nil {
		return false, fmt.Errorf("failed to open right file: %w", err)
	}
	defer rightReader.Close()

	var lr io.Reader = leftReader
	var rr io.Reader = rightReader
	if e.readerWrapper != nil {
		lr = e.readerWrapper(leftReader)
		rr = e.readerWrapper(rightReader)
	}

	leftBufPtr := e.bufferPool.Get().(*[]byte)
	defer e.bufferPool.Put(leftBufPtr)
	leftBuf := *leftBufPtr

	rightBufPtr := e.bufferPool.Get().(*[]byte)
	defer e.bufferPool.Put(rightBufPtr)
	rightBuf := *rightBufPtr

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		ln, lerr := io.ReadFull(lr, leftBuf)
		rn, rerr := io.ReadFull(rr, rightBuf)

		if ln != rn {
			return false, nil
		}

		if ln > 0 && !bytes.Equal(leftBuf[:ln], rightBuf[:rn]) {
			return false, nil
		}

		leftDone := lerr == io.EOF || lerr == io.ErrUnexpectedEOF
		rightDone := rerr == io.EOF || rerr == io.ErrUnexpectedEOF
		if leftDone && rightDone {
			return true, nil
		}
		if leftDone != rightDone {
			return false, nil
		}

		if lerr != nil {
			return false, fmt.Errorf("failed to read left file: %w", lerr)
		}
		if rerr != nil {
			return false, fmt.Errorf("failed to read right file: %w", rerr)
		}
	}
}

// Name returns the policy name
func (e *BinaryEquivalencer) Name() string {
	return "binary"
}
