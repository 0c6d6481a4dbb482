package jahia

import (
	"fmt"
	"net/url"
	"path"

	"github.com/google/go-querystring/query"
)

const (
	loginPath  = "/administration"
	exportPath = "/cms/export/default"
)

// ExportQuery defines the query parameters understood by Jahia's site export servlet.
type ExportQuery struct {
	Do           string `url:"do"`           // always "sites"
	SiteBox      string `url:"sitebox"`      // site key to export; required
	ExportFormat string `url:"exportformat"` // "site" gives the full zip with files
}

// NewExportQuery returns the parameters that export the whole of one site.
func NewExportQuery(site string) ExportQuery {
	return ExportQuery{
		Do:           "sites",
		SiteBox:      site,
		ExportFormat: "site",
	}
}

// Values encodes the query.
func (q ExportQuery) Values() (url.Values, error) {
	if q.SiteBox == "" {
		return nil, fmt.Errorf("jahia: please provide a site to export")
	}

	v, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("jahia: couldn't encode query params: %w", err)
	}

	return v, nil
}

// ExportEndpoint returns the URL that triggers, then serves, the export zip called fileName.
func ExportEndpoint(base *url.URL, fileName string) (*url.URL, error) {
	if fileName == "" {
		return nil, fmt.Errorf("jahia: please provide an export file name")
	}

	return resolveEndpoint(base, path.Join(exportPath, fileName))
}

func (s *Session) loginEndpoint() (*url.URL, error) {
	return resolveEndpoint(s.BaseURI, loginPath)
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func resolveEndpoint(base *url.URL, endpoint string) (*url.URL, error) {
	if base == nil {
		return nil, fmt.Errorf("jahia: no base URI to resolve %s against", endpoint)
	}

	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("jahia: failed to parse endpoint ref: %w", err)
	}

	return base.ResolveReference(ref), nil
}
