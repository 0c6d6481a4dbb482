// Package tracer keeps a CSV trail of which migration step succeeded for which site, so that a long
// batch can be audited (or diffed against the list of requested sites) afterwards.
package tracer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Status of a step.  Only successes are written: a site with no OK row for a step failed it.
type Status string

const StatusOK Status = "OK"

// Recorder is the write-only sink the migration steps report to.
type Recorder interface {
	WriteRow(site string, step string, status Status)
}

// Nop discards every row.
type Nop struct{}

func (Nop) WriteRow(string, string, Status) {}

var header = []string{"date", "site", "step", "status"}

// Tracer appends one CSV row per reported step.
type Tracer struct {
	mu  sync.Mutex
	f   afero.File
	w   *csv.Writer
	now func() time.Time

	// Set when a row couldn't be written; WriteRow has nobody to return it to.
	err error
}

// New opens (or creates) the CSV file at filePath for appending.
func New(fs afero.Fs, filePath string) (*Tracer, error) {
	if filePath == "" {
		return nil, fmt.Errorf("tracer: no file path given")
	}

	if err := fs.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return nil, fmt.Errorf("tracer: couldn't create directory for %s: %w", filePath, err)
	}

	f, err := fs.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("tracer: couldn't open %s: %w", filePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("tracer: couldn't stat %s: %w", filePath, err)
	}

	t := &Tracer{
		f:   f,
		w:   csv.NewWriter(f),
		now: time.Now,
	}

	if stat.Size() == 0 {
		if err := t.write(header); err != nil {
			f.Close()
			return nil, err
		}
	}

	return t, nil
}

func (t *Tracer) WriteRow(site string, step string, status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := []string{t.now().Format(time.RFC3339), site, step, string(status)}
	if err := t.write(row); err != nil && t.err == nil {
		t.err = err
	}
}

func (t *Tracer) write(row []string) error {
	if err := t.w.Write(row); err != nil {
		return fmt.Errorf("tracer: couldn't write row: %w", err)
	}
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		return fmt.Errorf("tracer: couldn't flush row: %w", err)
	}
	return nil
}

// Close closes the file, and reports the first row that failed to be written, if any.
func (t *Tracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.f.Close(); err != nil {
		return fmt.Errorf("tracer: couldn't close file: %w", err)
	}
	return t.err
}
