package store

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// compressedTag marks values written by the compressed wrapper. Untagged
// values were stored before compression was enabled and are returned as-is,
// even when they happen to be zstd frames themselves.
var compressedTag = []byte("psz1")

type compressed struct {
	Store
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Compressed wraps s so values are zstd-compressed at rest.
func Compressed(s Store) (Store, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &compressed{Store: s, enc: enc, dec: dec}, nil
}

func (c *compressed) Set(key string, value []byte) error {
	out := append([]byte(nil), compressedTag...)
	return c.Store.Set(key, c.enc.EncodeAll(value, out))
}

func (c *compressed) Get(key string) ([]byte, error) {
	raw, err := c.Store.Get(key)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(raw, compressedTag) {
		return raw, nil
	}
	out, err := c.dec.DecodeAll(raw[len(compressedTag):], nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", key, err)
	}
	return out, nil
}

func (c *compressed) Close() error {
	c.enc.Close()
	c.dec.Close()
	return c.Store.Close()
}
