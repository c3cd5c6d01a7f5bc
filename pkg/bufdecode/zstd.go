package bufdecode

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// MaxInflatedSize caps the decompressed size of a single zstd frame.
const MaxInflatedSize = 64 << 20

var zdec struct {
	once sync.Once
	d    *zstd.Decoder
	err  error
}

func newInflater(limit uint64) (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(limit),
	)
}

// inflate decompresses a zstd frame into a new buffer.
func inflate(src []byte) ([]byte, error) {
	zdec.once.Do(func() {
		zdec.d, zdec.err = newInflater(MaxInflatedSize)
	})
	if zdec.err != nil {
		return nil, zdec.err
	}
	return inflateWith(zdec.d, src)
}

func inflateWith(d *zstd.Decoder, src []byte) ([]byte, error) {
	out, err := d.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}
