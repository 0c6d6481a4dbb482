package localdump

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// writeStream copies body into filePath, chunk by chunk.  Each chunk goes straight to the file
// without userland buffering, so whatever arrived is on disk if we're killed halfway.
func writeStream(fs afero.Fs, filePath string, body io.Reader) (int64, error) {
	directory := filepath.Dir(filePath)
	if err := fs.MkdirAll(directory, 0750); err != nil {
		return 0, fmt.Errorf("couldn't create directory %s: %w", directory, err)
	}

	f, err := fs.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("couldn't create file %s: %w", filePath, err)
	}
	defer f.Close()

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("couldn't write to file %s: %w", filePath, err)
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, fmt.Errorf("couldn't read response body: %w", readErr)
		}
	}

	if err := f.Sync(); err != nil {
		return written, fmt.Errorf("couldn't sync file %s: %w", filePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		return written, fmt.Errorf("couldn't stat file %s: %w", filePath, err)
	}

	return stat.Size(), nil
}
