package localdump

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ManifestEntry is one line of the manifest a batch leaves behind for the unzip/parse steps.
type ManifestEntry struct {
	Site   string `yaml:"site"`
	Path   string `yaml:"path,omitempty"`
	Status string `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
}

// WriteManifest stores the outcome of every site of a batch as YAML, in request order.
func WriteManifest(fs afero.Fs, filePath string, files *DownloadedFiles) error {
	entries := []ManifestEntry{}
	for _, o := range files.Outcomes() {
		e := ManifestEntry{
			Site:   o.Site,
			Path:   o.Path,
			Status: o.Status.String(),
		}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		entries = append(entries, e)
	}

	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("localdump: couldn't marshal manifest YAML: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("localdump: couldn't create directory for %s: %w", filePath, err)
	}

	if err := afero.WriteFile(fs, filePath, out, 0640); err != nil {
		return fmt.Errorf("localdump: couldn't write manifest %s: %w", filePath, err)
	}

	return nil
}

