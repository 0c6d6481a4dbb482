package localdump

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/afero"
	"github.com/toothbrush/jahia-dump/tracer"
	"go.uber.org/zap"
)

const (
	// MinArchiveSize is the smallest zip we believe Jahia meant to send.
	MinArchiveSize = 200

	chunkSize = 4096

	stepDownload = "download"
)

// Poster is the part of jahia.Session downloads need.
type Poster interface {
	Post(ctx context.Context, endpoint *url.URL, params url.Values) (*http.Response, error)
}

type Status int8

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return "FAILED"
	}
}

// Outcome reports what happened to one site.
type Outcome struct {
	Site    string
	Path    string
	Status  Status
	Elapsed time.Duration
	Err     error
}

// ExportDownloader fetches the export zip of a single site.
type ExportDownloader struct {
	Target  *ExportTarget
	Session Poster
	FS      afero.Fs
	Tracer  tracer.Recorder
	Logger  *zap.SugaredLogger

	// Zero means wait for as long as Jahia needs.
	ExportTimeout time.Duration
}

// Download returns the path of the site's zip.  With skipIfExists, a zip from a previous run is
// reused and Jahia isn't bothered at all; otherwise Jahia builds a fresh export, which can take
// minutes, and we stream it to Target.FilePath.
func (d *ExportDownloader) Download(ctx context.Context, skipIfExists bool) (Outcome, error) {
	t := d.Target
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	if d.Tracer == nil {
		d.Tracer = tracer.Nop{}
	}

	// do not download twice if not forced
	if skipIfExists && t.AlreadyDownloaded() {
		files := t.ExistingFiles()
		filePath := files[len(files)-1]
		d.Logger.Infof("%s - zip already downloaded %dx. Last one is %s", t.Site, len(files), filePath)
		d.Tracer.WriteRow(t.Site, stepDownload, tracer.StatusOK)

		return Outcome{Site: t.Site, Path: filePath, Status: StatusSkipped}, nil
	}

	start := time.Now()

	if err := d.fetch(ctx); err != nil {
		return Outcome{Site: t.Site, Status: StatusFailed, Err: err, Elapsed: time.Since(start)}, err
	}

	elapsed := time.Since(start)
	d.Logger.Infof("%s - file downloaded in %s", t.Site, elapsed.Round(time.Millisecond))
	d.Tracer.WriteRow(t.Site, stepDownload, tracer.StatusOK)

	return Outcome{Site: t.Site, Path: t.FilePath, Status: StatusOK, Elapsed: elapsed}, nil
}

func (d *ExportDownloader) fetch(ctx context.Context) error {
	t := d.Target

	if d.ExportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.ExportTimeout)
		defer cancel()
	}

	// This only returns once Jahia has finished generating the zip.
	d.Logger.Infof("%s - downloading %s...", t.Site, t.FileName)
	response, err := d.Session.Post(ctx, t.FileURL, t.Params)
	if err != nil {
		return d.wrapTimeout(ctx, fmt.Errorf("localdump(%s): export request failed: %w", t.Site, err))
	}
	defer response.Body.Close()

	requestURL := t.FileURL.String()
	if response.Request != nil {
		requestURL = response.Request.URL.String()
	}
	d.Logger.Debugf("%s - %s => %d", t.Site, requestURL, response.StatusCode)

	if response.StatusCode != http.StatusOK {
		return &RemoteRequestError{
			Site:       t.Site,
			URL:        requestURL,
			StatusCode: response.StatusCode,
			Status:     response.Status,
		}
	}

	d.Logger.Debugf("%s - headers %v", t.Site, response.Header)
	d.Logger.Infof("%s - saving response into %s...", t.Site, t.FilePath)

	size, err := writeStream(d.FS, t.FilePath, response.Body)
	if err != nil {
		d.discard(t.FilePath)
		return d.wrapTimeout(ctx, fmt.Errorf("localdump(%s): %w", t.Site, err))
	}

	if size < MinArchiveSize {
		d.Logger.Errorf("%s - the Jahia zip is empty", t.Site)
		d.discard(t.FilePath)
		return &EmptyArchiveError{Path: t.FilePath, Size: size}
	}

	return nil
}

// A zip on disk means "already downloaded" to the next run, so broken ones must go.
func (d *ExportDownloader) discard(filePath string) {
	if err := d.FS.Remove(filePath); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
		d.Logger.Warnf("%s - couldn't remove broken zip %s: %v", d.Target.Site, filePath, err)
	}
}

func (d *ExportDownloader) wrapTimeout(ctx context.Context, err error) error {
	if d.ExportTimeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", ErrExportTimeout, d.ExportTimeout, err)
	}
	return err
}
