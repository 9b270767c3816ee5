// Package output handles writing the corpus file.
// Every rendered sample is appended to one stream, encoded with the
// configured Unicode encoding. The stream goes to a temporary file next to
// the target, which only replaces the target on a successful Close.
package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encodings lists the supported output encodings.
var Encodings = []string{"utf-8", "utf-8-bom", "utf-16le", "utf-16be"}

// encoderFor returns nil for plain UTF-8, which is written untouched.
func encoderFor(name string) (*encoding.Encoder, error) {
	switch name {
	case "", "utf-8":
		return nil, nil
	case "utf-8-bom":
		return unicode.UTF8BOM.NewEncoder(), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// Writer creates output files on a filesystem.
type Writer struct {
	fs afero.Fs
}

// New creates a Writer on fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs}
}

// Create starts a new output for path, making parent directories as needed,
// and returns a SampleWriter that encodes everything written to it. An
// existing file at path is left untouched until Close.
func (w *Writer) Create(path, enc string) (*SampleWriter, error) {
	encoder, err := encoderFor(enc)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".*.partial")
	if err != nil {
		return nil, fmt.Errorf("creating file %s: %w", path, err)
	}
	if err := w.fs.Chmod(f.Name(), 0o644); err != nil {
		return nil, errors.Join(fmt.Errorf("creating file %s: %w", path, err), f.Close(), w.fs.Remove(f.Name()))
	}

	sw := &SampleWriter{fs: w.fs, file: f, path: path, out: f}
	if encoder != nil {
		sw.enc = transform.NewWriter(f, encoder)
		sw.out = sw.enc
	}
	return sw, nil
}

// SampleWriter appends rendered samples to one file.
type SampleWriter struct {
	fs    afero.Fs
	file  afero.File // temporary file renamed to path on Close
	path  string
	enc   io.WriteCloser // nil for plain UTF-8
	out   io.Writer
	count int
	done  bool
}

// Write appends one rendered sample.
func (s *SampleWriter) Write(data []byte) (int, error) {
	n, err := s.out.Write(data)
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", s.path, err)
	}
	s.count++
	return n, nil
}

// Count returns the number of samples written.
func (s *SampleWriter) Count() int {
	return s.count
}

// Path returns the file path being written.
func (s *SampleWriter) Path() string {
	return s.path
}

// Close flushes the encoder, closes the file and moves it into place.
// On failure the temporary file is removed and path keeps its old contents.
func (s *SampleWriter) Close() error {
	if s.done {
		return nil
	}
	s.done = true

	if s.enc != nil {
		if err := s.enc.Close(); err != nil {
			return errors.Join(fmt.Errorf("flushing %s: %w", s.path, err), s.discard())
		}
	}
	if err := s.file.Close(); err != nil {
		return errors.Join(fmt.Errorf("closing %s: %w", s.path, err), s.remove())
	}
	if err := s.fs.Rename(s.file.Name(), s.path); err != nil {
		return errors.Join(fmt.Errorf("replacing %s: %w", s.path, err), s.remove())
	}
	return nil
}

// Abort drops everything written so far. path keeps its old contents.
func (s *SampleWriter) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.discard()
}

func (s *SampleWriter) discard() error {
	return errors.Join(s.file.Close(), s.remove())
}

func (s *SampleWriter) remove() error {
	if err := s.fs.Remove(s.file.Name()); err != nil {
		return fmt.Errorf("removing %s: %w", s.file.Name(), err)
	}
	return nil
}
