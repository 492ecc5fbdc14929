package storage

import (
	"bytes"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// CompressLZ4 encodes data as an lz4 frame.
func CompressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Compress applies the named codec to a request's content and sets its
// content encoding. "none" and "" leave the request unchanged.
func Compress(req *PutObjectRequest, codec string) error {
	switch codec {
	case "", "none":
		return nil
	case EncodingLZ4:
		data, err := CompressLZ4(req.Content)
		if err != nil {
			return err
		}
		req.Content = data
		req.ContentLength = int64(len(data))
		req.ContentEncoding = EncodingLZ4
		return nil
	default:
		return fmt.Errorf("%w: unknown compression %q", ErrInvalidRequest, codec)
	}
}
