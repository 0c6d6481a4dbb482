package localdump

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/spf13/afero"
	"github.com/toothbrush/jahia-dump/jahia"
)

const (
	dateLayout = "2006-01-02"
	// glob matching a dateLayout date
	datePattern = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]"
)

var siteKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ExportTarget knows, for one site, where its export is triggered, where the zip lands locally and
// which zips were already fetched on previous runs.  It doesn't change after construction.
type ExportTarget struct {
	Site     string
	Date     string
	FileName string
	FilePath string
	FileURL  *url.URL
	Params   url.Values

	// previous downloads, oldest first
	existing []string
}

// NewExportTarget resolves everything about the export of site for the given date (YYYY-MM-DD;
// empty means today), with zips stored under zipPath.
func NewExportTarget(fs afero.Fs, baseURI *url.URL, site string, date string, zipPath string) (*ExportTarget, error) {
	if !siteKeyPattern.MatchString(site) {
		return nil, &ConfigError{Site: site, Reason: fmt.Sprintf("invalid site key '%s'", site)}
	}
	if zipPath == "" {
		return nil, &ConfigError{Site: site, Reason: "no zip path set, use --zip-path or set it in your config file"}
	}
	if baseURI == nil {
		return nil, &ConfigError{Site: site, Reason: "no Jahia host set"}
	}

	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, &ConfigError{Site: site, Reason: fmt.Sprintf("date '%s' is not YYYY-MM-DD", date)}
	}

	fileName := fmt.Sprintf("%s_export_%s.zip", site, date)

	fileURL, err := jahia.ExportEndpoint(baseURI, fileName)
	if err != nil {
		return nil, &ConfigError{Site: site, Reason: err.Error()}
	}

	params, err := jahia.NewExportQuery(site).Values()
	if err != nil {
		return nil, &ConfigError{Site: site, Reason: err.Error()}
	}

	// anchored on the date so that a site called "<site>_export_x" isn't mistaken for ours
	existing, err := afero.Glob(fs, filepath.Join(zipPath, site+"_export_"+datePattern+".zip"))
	if err != nil {
		return nil, &ConfigError{Site: site, Reason: fmt.Sprintf("couldn't look for previous zips: %s", err)}
	}
	// the date in the name sorts chronologically
	sort.Strings(existing)

	return &ExportTarget{
		Site:     site,
		Date:     date,
		FileName: fileName,
		FilePath: filepath.Join(zipPath, fileName),
		FileURL:  fileURL,
		Params:   params,
		existing: existing,
	}, nil
}

// AlreadyDownloaded tells whether a zip for this site was fetched before, on any date.
func (t *ExportTarget) AlreadyDownloaded() bool {
	return len(t.existing) > 0
}

// ExistingFiles lists previously downloaded zips, oldest first.
func (t *ExportTarget) ExistingFiles() []string {
	files := make([]string, len(t.existing))
	copy(files, t.existing)
	return files
}
