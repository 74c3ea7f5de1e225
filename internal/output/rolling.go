package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// RollingWriter appends documents to <prefix>_output_<n>.md, opening the next
// file when a document would push the current one past MaxBytes. A document
// is never split, so a single oversized document still gets written.
type RollingWriter struct {
	Dir      string
	Prefix   string
	MaxBytes int

	f     *os.File
	size  int
	files []string
}

func NewRollingWriter(dir, prefix string, maxBytes int) *RollingWriter {
	return &RollingWriter{Dir: dir, Prefix: prefix, MaxBytes: maxBytes}
}

// Write appends doc and returns the path it went to.
func (w *RollingWriter) Write(doc string) (string, error) {
	if w.f != nil && w.MaxBytes > 0 && w.size > 0 && w.size+len(doc) > w.MaxBytes {
		if err := w.closeCurrent(); err != nil {
			return "", err
		}
	}
	if w.f == nil {
		if err := w.open(); err != nil {
			return "", err
		}
	}
	n, err := w.f.WriteString(doc)
	w.size += n
	if err != nil {
		return "", err
	}
	return w.files[len(w.files)-1], nil
}

func (w *RollingWriter) open() error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(w.Dir, fmt.Sprintf("%s_output_%d.md", w.Prefix, len(w.files)+1))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w.f = f
	w.size = 0
	w.files = append(w.files, path)
	return nil
}

func (w *RollingWriter) closeCurrent() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// Files lists every file opened so far, in order.
func (w *RollingWriter) Files() []string {
	return append([]string(nil), w.files...)
}

func (w *RollingWriter) Close() error {
	return w.closeCurrent()
}
