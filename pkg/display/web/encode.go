package web

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// compress brotli compresses data at the given quality, 0 - 11.
func compress(data []byte, quality int) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, quality)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compressing frame: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing frame: %w", err)
	}
	return buf.Bytes(), nil
}

// decompress reverses compress.
func decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decompressing frame: %w", err)
	}
	return out, nil
}
