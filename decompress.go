package frs2csv

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// DataType is the compression, if any, of an extract.
type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ // LZW, detected but not decoded
	DataTypeBZip2
)

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
}

// DetectDataType inspects the first bytes of br without consuming them.
func DetectDataType(br *bufio.Reader) DataType {
	head, _ := br.Peek(6)

	for _, candidate := range byteCodeSigs {
		if bytes.HasPrefix(head, candidate.sig) {
			return candidate.dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress wraps rc so that reads yield decompressed bytes if rc holds
// a compressed stream. Closing the result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(rc, BufferSize)

	var (
		r   io.Reader
		err error
	)

	switch DetectDataType(br) {
	case DataTypeGzip:
		r, err = gzip.NewReader(br)
	case DataTypeZip:
		// Only the first member of an archive is read.
		zr := zipstream.NewReader(br)
		_, err = zr.Next()
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		r, err = xz.NewReader(br, 0)
	case DataTypeZ:
		err = fmt.Errorf("unix compress (.Z) streams are not supported; recompress with gzip")
	default:
		r = br
	}
	if err != nil {
		rc.Close()
		return nil, err
	}

	return &readCloser{Reader: r, close: rc.Close}, nil
}

// readCloser pairs a decoding reader with the Close of the stream beneath it.
type readCloser struct {
	io.Reader
	close func() error
}

func (c *readCloser) Close() error {
	return c.close()
}
