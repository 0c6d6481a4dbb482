/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/toothbrush/jahia-dump/jahia"
	"github.com/toothbrush/jahia-dump/localdump"
	"github.com/toothbrush/jahia-dump/tracer"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

var downloadUsage = strings.TrimSpace(`
Ask Jahia to export each given site and save the zip into --zip-path.  Sites whose export is
already on disk are skipped unless you --force a fresh one.  A site that fails doesn't stop the
others: check the table at the end.

Sites come from the arguments, or from the "sites" list in your config file.
`)

var downloadCmd = &cobra.Command{
	Use:   "download [site...]",
	Short: "Download Jahia site exports",
	Long:  downloadUsage,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDownload(cmd, args)
	},
}

var (
	Force         bool
	WithVCR       bool
	Workers       int
	ExportDate    string
	ExportTimeout time.Duration
	ManifestFile  string
	Sites         []string
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().BoolVarP(&Force, "force", "f", false, "download exports again even if they're already on disk")
	downloadCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
	downloadCmd.Flags().IntVar(&Workers, "workers", 1, "number of sites to export at the same time")
	downloadCmd.Flags().StringVar(&ExportDate, "date", "", "date stamp of the export files, YYYY-MM-DD (default: today)")
	downloadCmd.Flags().DurationVar(&ExportTimeout, "export-timeout", 0, "give up on a single export after this long (default: wait forever)")
	downloadCmd.Flags().StringVar(&ManifestFile, "manifest", "", "write a YAML summary of the run to this file")
	downloadCmd.Flags().StringSliceVar(&Sites, "sites", []string{}, "sites to export when none are given as arguments")
}

func runDownload(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sites := args
	if len(sites) == 0 {
		sites = Sites
	}
	if len(sites) == 0 {
		return fmt.Errorf("download: no sites given.  Pass them as arguments or set sites in your config file")
	}

	if ZipPath == "" {
		return fmt.Errorf("download: no location set for export zips.  Use --zip-path or set it in your config file")
	}
	zipPath, err := homedir.Expand(ZipPath)
	if err != nil {
		return fmt.Errorf("download: couldn't expand homedir: %w", err)
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(zipPath, 0o755); err != nil {
		return fmt.Errorf("download: couldn't create directory %s: %w", zipPath, err)
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	session, err := jahia.NewSession(JahiaProtocol, JahiaHost, AuthUsername, password)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}

	if WithVCR {
		r, err := newRecorder(session.Client.Transport)
		if err != nil {
			return err
		}
		defer func() {
			if err := r.Stop(); err != nil {
				log.Warnw("couldn't save go-vcr cassette", "error", err)
			}
		}()
		// keep the session's cookie jar, only swap the transport
		session.Client.Transport = r
	}

	ctx := cmd.Context()
	log.Infof("Logging in to %s as %s...", session.Host(), AuthUsername)
	if err := session.Login(ctx); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	var rows tracer.Recorder = tracer.Nop{}
	if TracerFile != "" {
		tracerPath, err := homedir.Expand(TracerFile)
		if err != nil {
			return fmt.Errorf("download: couldn't expand homedir: %w", err)
		}
		t, err := tracer.New(fs, tracerPath)
		if err != nil {
			return fmt.Errorf("download: %w", err)
		}
		defer func() {
			if err := t.Close(); err != nil {
				log.Errorw("tracer file may be incomplete", "path", tracerPath, "error", err)
			}
		}()
		rows = t
	}

	batch := &localdump.BatchDownloader{
		Session:       session,
		BaseURI:       session.BaseURI,
		FS:            fs,
		ZipPath:       zipPath,
		Date:          ExportDate,
		Force:         Force,
		Workers:       Workers,
		ExportTimeout: ExportTimeout,
		Tracer:        rows,
		Logger:        log,
		Progress:      os.Stderr,
	}

	files, err := batch.DownloadMany(ctx, sites)
	if err != nil {
		var configErr *localdump.ConfigError
		if errors.As(err, &configErr) {
			return fmt.Errorf("download: check your site list: %w", err)
		}
		return fmt.Errorf("download: %w", err)
	}

	printOutcomes(cmd.OutOrStdout(), files)
	log.Infof("Downloaded %d of %d sites.", files.Len(), len(files.Outcomes()))

	if ManifestFile != "" {
		manifestPath, err := homedir.Expand(ManifestFile)
		if err != nil {
			return fmt.Errorf("download: couldn't expand homedir: %w", err)
		}
		if err := localdump.WriteManifest(fs, manifestPath, files); err != nil {
			return fmt.Errorf("download: %w", err)
		}
		log.Infow("wrote manifest", "path", manifestPath)
	}

	return nil
}

func readPassword() (string, error) {
	if len(AuthPasswordCmd) == 0 {
		return "", fmt.Errorf("download: no password command set.  Use --auth-password-cmd or set auth-password-cmd in your config file")
	}

	output, err := exec.Command(AuthPasswordCmd[0], AuthPasswordCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("download: couldn't execute auth-password-cmd '%v': %w", AuthPasswordCmd, err)
	}

	return strings.Split(string(output), "\n")[0], nil
}

func newRecorder(real http.RoundTripper) (*recorder.Recorder, error) {
	if real == nil {
		real = http.DefaultTransport
	}
	opts := &recorder.Options{
		CassetteName:       "fixtures/jahia-exports",
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      real,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("download: couldn't set up go-vcr recording: %w", err)
	}

	// Don't write credentials into the cassette.
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Cookie")
		delete(i.Response.Headers, "Set-Cookie")
		if i.Request.Form.Has("login_password") {
			i.Request.Form.Set("login_password", "redacted")
			i.Request.Body = ""
		}
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	return r, nil
}

func printOutcomes(w io.Writer, files *localdump.DownloadedFiles) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Site", "Status", "File / error", "Took"})

	for _, o := range files.Outcomes() {
		detail := o.Path
		if o.Err != nil {
			detail = o.Err.Error()
		}
		took := ""
		if o.Elapsed > 0 {
			took = o.Elapsed.Round(time.Millisecond).String()
		}
		t.AppendRow(table.Row{o.Site, statusColors(o.Status).Sprint(o.Status), detail, took})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d failed", len(files.Failed())), ""})
	t.Render()
}

func statusColors(s localdump.Status) text.Colors {
	switch s {
	case localdump.StatusOK:
		return text.Colors{text.FgGreen}
	case localdump.StatusSkipped:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed, text.Bold}
	}
}
