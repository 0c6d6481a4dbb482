package localdump

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/spf13/afero"
	"github.com/toothbrush/jahia-dump/tracer"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchDownloader downloads many sites with one shared session.  A site that fails is logged and
// left out of the result; the others carry on.
type BatchDownloader struct {
	Session Poster
	BaseURI *url.URL
	FS      afero.Fs
	ZipPath string
	Date    string

	// Re-download sites that already have a zip.
	Force bool

	// How many exports may run at once.  Values below 1 mean 1.
	Workers int

	ExportTimeout time.Duration

	Tracer tracer.Recorder
	Logger *zap.SugaredLogger

	// Where the progress bar goes; nil hides it.
	Progress io.Writer
}

// DownloadMany fetches every site and returns the paths of those that made it, in input order.
// Only configuration errors are returned: they are detected before any download starts.
func (b *BatchDownloader) DownloadMany(ctx context.Context, sites []string) (*DownloadedFiles, error) {
	sites = dedupe(sites)

	rows, log := b.Tracer, b.Logger
	if rows == nil {
		rows = tracer.Nop{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	downloaders := make([]*ExportDownloader, 0, len(sites))
	for _, site := range sites {
		target, err := NewExportTarget(b.FS, b.BaseURI, site, b.Date, b.ZipPath)
		if err != nil {
			return nil, err
		}

		downloaders = append(downloaders, &ExportDownloader{
			Target:        target,
			Session:       b.Session,
			FS:            b.FS,
			Tracer:        rows,
			Logger:        log,
			ExportTimeout: b.ExportTimeout,
		})
	}

	if len(downloaders) == 0 {
		return newDownloadedFiles(nil), nil
	}

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	p := mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(b.Progress))
	bar := p.AddBar(int64(len(downloaders)),
		mpb.PrependDecorators(
			decor.Name("sites:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
			decor.Spinner([]string{" /", " -", " \\", " |"}),
		),
	)

	// each worker owns its slot, so no locking
	outcomes := make([]Outcome, len(downloaders))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for i, d := range downloaders {
		i, d := i, d
		grp.Go(func() error {
			defer bar.Increment()

			outcome, err := d.Download(gctx, !b.Force)
			if err != nil {
				log.Errorw(fmt.Sprintf("%s - %s - could not download Jahia export", d.Target.Site, stepDownload),
					"site", d.Target.Site,
					"step", stepDownload,
					"error", err,
				)
			}
			outcomes[i] = outcome

			// never fail the group: one site must not cancel the others
			return nil
		})
	}

	// workers never return errors
	_ = grp.Wait()
	p.Wait()

	return newDownloadedFiles(outcomes), nil
}

func dedupe(sites []string) []string {
	seen := make(map[string]bool, len(sites))
	unique := make([]string, 0, len(sites))
	for _, s := range sites {
		if seen[s] {
			continue
		}
		seen[s] = true
		unique = append(unique, s)
	}
	return unique
}
