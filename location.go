// Package frs2csv opens Family Resources Survey extracts and output tables on
// local disk or Google Storage.
package frs2csv

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// BufferSize is used for buffered reads of extracts.
var BufferSize = 4096 * 8

// IsGoogleStorage is true for gs:// locations.
func IsGoogleStorage(location string) bool {
	return strings.HasPrefix(location, "gs://")
}

// SplitGoogleStoragePath returns the bucket and object of a gs:// path.
func SplitGoogleStoragePath(location string) (string, string, error) {
	pathParts := strings.SplitN(strings.TrimPrefix(location, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// JoinPath appends name to a local or gs:// directory.
func JoinPath(dir, name string) string {
	if IsGoogleStorage(dir) {
		return "gs://" + path.Join(strings.TrimPrefix(dir, "gs://"), name)
	}

	return filepath.Join(dir, name)
}

// OpenSource opens an extract for reading, transparently decompressing it.
// client is only needed for gs:// locations.
func OpenSource(ctx context.Context, location string, client *storage.Client) (io.ReadCloser, error) {
	var rc io.ReadCloser

	if IsGoogleStorage(location) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client", location)
		}

		bucketName, objectName, err := SplitGoogleStoragePath(location)
		if err != nil {
			return nil, pfx.Err(err)
		}

		rc, err = client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", location, err))
		}
	} else {
		local, err := ExpandHome(location)
		if err != nil {
			return nil, err
		}

		rc, err = os.Open(local)
		if err != nil {
			return nil, pfx.Err(err)
		}
	}

	out, err := MaybeDecompress(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", location, err))
	}

	return out, nil
}

// Sink is an output that becomes visible only when Close succeeds. Abort
// discards everything written so far.
type Sink interface {
	io.WriteCloser
	Abort() error
}

// CreateSink opens location for writing, creating local parent directories as
// needed. Local output goes to a temporary file beside location and is renamed
// into place by Close.
func CreateSink(ctx context.Context, location string, client *storage.Client) (Sink, error) {
	if IsGoogleStorage(location) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client", location)
		}

		bucketName, objectName, err := SplitGoogleStoragePath(location)
		if err != nil {
			return nil, pfx.Err(err)
		}

		// Cancelling the writer's context before Close stops the upload
		// from being committed.
		wctx, cancel := context.WithCancel(ctx)
		w := client.Bucket(bucketName).Object(objectName).NewWriter(wctx)
		w.ContentType = "text/csv"
		return &gsSink{Writer: w, cancel: cancel}, nil
	}

	local, err := ExpandHome(location)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return nil, pfx.Err(err)
	}

	f, err := os.CreateTemp(filepath.Dir(local), "."+filepath.Base(local)+".*")
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &fileSink{File: f, target: local}, nil
}

type gsSink struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (s *gsSink) Close() error {
	defer s.cancel()
	return s.Writer.Close()
}

func (s *gsSink) Abort() error {
	s.cancel()
	s.Writer.Close()
	return nil
}

type fileSink struct {
	*os.File
	target string
}

func (s *fileSink) Close() error {
	if err := s.File.Close(); err != nil {
		os.Remove(s.File.Name())
		return pfx.Err(err)
	}

	if err := os.Chmod(s.File.Name(), 0644); err != nil {
		os.Remove(s.File.Name())
		return pfx.Err(err)
	}

	if err := os.Rename(s.File.Name(), s.target); err != nil {
		os.Remove(s.File.Name())
		return pfx.Err(err)
	}

	return nil
}

func (s *fileSink) Abort() error {
	s.File.Close()
	return os.Remove(s.File.Name())
}
