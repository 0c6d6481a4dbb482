package localdump

import (
	"errors"
	"fmt"
)

// ErrExportTimeout is wrapped into the error of a download that ran over the configured export
// timeout.  Without a timeout the export call may block for as long as Jahia takes.
var ErrExportTimeout = errors.New("localdump: export timed out")

// ConfigError is returned when a site's export can't even be described: bad site key, no zip
// path, and so on.  Batches don't swallow these.
type ConfigError struct {
	Site   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Site == "" {
		return fmt.Sprintf("localdump: configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("localdump(%s): configuration error: %s", e.Site, e.Reason)
}

// RemoteRequestError is returned when Jahia answers the export request with anything but 200.
type RemoteRequestError struct {
	Site       string
	URL        string
	StatusCode int
	Status     string
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("localdump(%s): export request failed: %s: %s", e.Site, e.Status, e.URL)
}

// EmptyArchiveError is returned when the "zip" Jahia sent back is too small to be one.  That usually
// means an error page was served with a 200.
type EmptyArchiveError struct {
	Path string
	Size int64
}

func (e *EmptyArchiveError) Error() string {
	return fmt.Sprintf("localdump: Jahia zip %s is empty (%d bytes, want at least %d)", e.Path, e.Size, MinArchiveSize)
}
