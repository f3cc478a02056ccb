// Package csvio reads and writes frame tables as CSV files. Reads tolerate
// ragged rows and UTF-8/UTF-16 byte order marks; writes are atomic.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tv-data/internal/frame"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadFrame reads a CSV file into a frame. The first record is the header;
// short data records are padded with nulls, long ones truncated. Empty cells
// become nulls.
func ReadFrame(path string) (frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return frame.Frame{}, err
	}
	defer file.Close()
	f, err := ReadFrameFrom(file)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}

// NewReader wraps r in a CSV reader, decoding UTF-16 input and stripping a
// UTF-8 BOM first. Exported CSVs from charting tools are sometimes UTF-16.
func NewReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	head, _ := br.Peek(3)
	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, bomUTF16LE), bytes.HasPrefix(head, bomUTF16BE):
		src = transform.NewReader(br,
			unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case bytes.HasPrefix(head, bomUTF8):
		br.Discard(len(bomUTF8))
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// ReadFrameFrom reads CSV from r into a frame.
func ReadFrameFrom(r io.Reader) (frame.Frame, error) {
	cr := NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return frame.New(), nil
	}
	if err != nil {
		return frame.Frame{}, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	f := frame.New(header...)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Frame{}, err
		}
		row := make([]frame.Value, len(header))
		for i := range header {
			if i < len(record) && record[i] != "" {
				row[i] = frame.String(record[i])
			} else {
				row[i] = frame.Null()
			}
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}

// WriteFrame writes a frame as CSV, creating parent directories and going
// through a temp file plus rename so readers never observe a partial file.
func WriteFrame(f frame.Frame, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(f.Columns); err != nil {
		return err
	}
	record := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for i := range f.Columns {
			if i < len(row) {
				record[i] = row[i].String()
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes())
}

// WriteFileAtomic writes data to path via a same-directory temp file and
// rename, creating parent directories first.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Discover expands a path argument into CSV file paths: a directory yields
// its *.csv entries sorted by name, anything else is treated as a glob (a
// plain filename is its own glob). No matches is an error.
func Discover(pathOrGlob string) ([]string, error) {
	info, err := os.Stat(pathOrGlob)
	if err == nil && info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(pathOrGlob, "*.csv"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no csv files in %s", pathOrGlob)
		}
		sort.Strings(matches)
		return matches, nil
	}
	matches, err := filepath.Glob(pathOrGlob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %s", pathOrGlob)
	}
	sort.Strings(matches)
	return matches, nil
}
