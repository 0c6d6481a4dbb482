package localdump

// DownloadedFiles maps sites to their zip, in the order the sites were requested.  Failed sites are
// never in the mapping, so diffing the requested sites against Sites() yields the failures.
type DownloadedFiles struct {
	sites    []string
	paths    map[string]string
	outcomes []Outcome
}

func newDownloadedFiles(outcomes []Outcome) *DownloadedFiles {
	d := &DownloadedFiles{
		paths:    make(map[string]string),
		outcomes: outcomes,
	}
	for _, o := range outcomes {
		if o.Status == StatusFailed {
			continue
		}
		d.sites = append(d.sites, o.Site)
		d.paths[o.Site] = o.Path
	}
	return d
}

// Sites returns the sites that have a zip, in request order.
func (d *DownloadedFiles) Sites() []string {
	sites := make([]string, len(d.sites))
	copy(sites, d.sites)
	return sites
}

// Path returns the zip of site, if its download went fine.
func (d *DownloadedFiles) Path(site string) (string, bool) {
	p, ok := d.paths[site]
	return p, ok
}

func (d *DownloadedFiles) Len() int {
	return len(d.sites)
}

// Outcomes returns what happened to every requested site, failures included.
func (d *DownloadedFiles) Outcomes() []Outcome {
	outcomes := make([]Outcome, len(d.outcomes))
	copy(outcomes, d.outcomes)
	return outcomes
}

// Failed returns the sites that have no zip.
func (d *DownloadedFiles) Failed() []string {
	failed := []string{}
	for _, o := range d.outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o.Site)
		}
	}
	return failed
}
