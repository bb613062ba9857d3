package expectations

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"expectgroup/internal/errors"
)

// Load reads and parses the expectations file at path.
// Files ending in .gz or .zst are decompressed first.
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = path
		}
		return nil, err
	}
	return doc, nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.InputUnreadable, "cannot read expectations file", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		data, err := gunzip(raw)
		if err != nil {
			return nil, errors.New(errors.InputUnreadable, "cannot decompress gzip expectations", path, err)
		}
		return data, nil
	case strings.HasSuffix(path, ".zst"):
		data, err := unzstd(raw)
		if err != nil {
			return nil, errors.New(errors.InputUnreadable, "cannot decompress zstd expectations", path, err)
		}
		return data, nil
	default:
		return raw, nil
	}
}

func gunzip(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}

func unzstd(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(raw, nil)
}
