package frs2csv

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := SplitGoogleStoragePath("gs://frs-extracts/2019/adult.tab")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "frs-extracts" || object != "2019/adult.tab" {
		t.Errorf("Unexpected split: %s %s", bucket, object)
	}

	if _, _, err := SplitGoogleStoragePath("gs://frs-extracts"); err == nil {
		t.Error("Expected an error for a path without an object")
	}
}

func TestJoinPath(t *testing.T) {
	if got := JoinPath("gs://bucket/frs/", "adult.tab"); got != "gs://bucket/frs/adult.tab" {
		t.Errorf("Unexpected gs path %s", got)
	}
	if got := JoinPath("data", "adult.tab"); got != filepath.Join("data", "adult.tab") {
		t.Errorf("Unexpected local path %s", got)
	}
}

func TestOpenSourceGzip(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("sernum\tPERSON\n1\t1\n"))
	zw.Close()

	location := filepath.Join(dir, "adult.tab.gz")
	if err := os.WriteFile(location, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	rc, err := OpenSource(context.Background(), location, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	got, err := ioutil.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "sernum\tPERSON\n1\t1\n" {
		t.Errorf("Unexpected content %q", got)
	}
}

func TestOpenSourcePlain(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "household.tab")
	if err := os.WriteFile(location, []byte("sernum\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rc, err := OpenSource(context.Background(), location, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	got, _ := ioutil.ReadAll(rc)
	if string(got) != "sernum\n1\n" {
		t.Errorf("Unexpected content %q", got)
	}
}

func TestGoogleStorageNeedsClient(t *testing.T) {
	if _, err := OpenSource(context.Background(), "gs://bucket/adult.tab", nil); err == nil {
		t.Error("Expected an error without a storage client")
	}
	if _, err := CreateSink(context.Background(), "gs://bucket/person.csv", nil); err == nil {
		t.Error("Expected an error without a storage client")
	}
}

func TestCreateSinkMakesDirectories(t *testing.T) {
	location := filepath.Join(t.TempDir(), "output", "person.csv")

	w, err := CreateSink(context.Background(), location, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("person_id\n"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	got, _ := os.ReadFile(location)
	if string(got) != "person_id\n" {
		t.Errorf("Unexpected content %q", got)
	}
}

func TestDetermineDelimiter(t *testing.T) {
	tab := "sernum\tPERSON\tSEX\n1\t1\t2\n2\t1\t1\n"
	if d := DetermineDelimiter(strings.NewReader(tab), ','); d != '\t' {
		t.Errorf("Expected tab, got %q", d)
	}
}

func TestMaybeDecompressRejectsUnixCompress(t *testing.T) {
	rc := ioutil.NopCloser(bytes.NewReader([]byte{0x1f, 0x9d, 0x90, 0x73, 0x65}))

	if _, err := MaybeDecompress(rc); err == nil {
		t.Error("Expected .Z input to be rejected")
	}

	br := bufio.NewReader(bytes.NewReader([]byte{0x1f, 0x9d, 0x90}))
	if dt := DetectDataType(br); dt != DataTypeZ {
		t.Errorf("Expected DataTypeZ, got %v", dt)
	}
}

func TestCreateSinkAbortLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "person.csv")

	w, err := CreateSink(context.Background(), location, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("person_id\n1p1\n"))
	if err := w.Abort(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected an aborted sink to leave nothing behind, found %d files", len(entries))
	}
}

func TestCreateSinkPublishesOnlyOnClose(t *testing.T) {
	location := filepath.Join(t.TempDir(), "household.csv")

	w, err := CreateSink(context.Background(), location, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("household_id\n"))

	if _, err := os.Stat(location); !os.IsNotExist(err) {
		t.Errorf("Expected no file at %s before Close, got %v", location, err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(location); err != nil {
		t.Error(err)
	}
}
