package localdump

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewExportTarget(t *testing.T) {
	fs := afero.NewMemMapFs()

	target, err := NewExportTarget(fs, mustURL(t, "https://jahia.example.com"), "dcsl", testDate, "/zips")
	require.NoError(t, err)

	assert.Equal(t, "dcsl", target.Site)
	assert.Equal(t, "dcsl_export_2024-01-02.zip", target.FileName)
	assert.Equal(t, "/zips/dcsl_export_2024-01-02.zip", target.FilePath)
	assert.Equal(t, "https://jahia.example.com/cms/export/default/dcsl_export_2024-01-02.zip", target.FileURL.String())
	assert.Equal(t, "dcsl", target.Params.Get("sitebox"))
	assert.Equal(t, "sites", target.Params.Get("do"))
	assert.Equal(t, "site", target.Params.Get("exportformat"))
	assert.False(t, target.AlreadyDownloaded())
	assert.Empty(t, target.ExistingFiles())
}

func TestNewExportTarget_DefaultsToToday(t *testing.T) {
	target, err := NewExportTarget(afero.NewMemMapFs(), mustURL(t, "https://jahia.example.com"), "dcsl", "", "/zips")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), target.Date)
}

func TestNewExportTarget_ExistingFilesOldestFirst(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{
		"/zips/dcsl_export_2023-12-01.zip",
		"/zips/dcsl_export_2022-05-17.zip",
		"/zips/dcsl_export_2023-01-09.zip",
		"/zips/other_export_2024-01-01.zip",
		"/zips/dcsl_export_2023-01-10.tar",
		"/zips/dcsl_export_old_export_2021-03-04.zip",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte("PK"), 0640))
	}

	target, err := NewExportTarget(fs, mustURL(t, "https://jahia.example.com"), "dcsl", testDate, "/zips")
	require.NoError(t, err)

	assert.True(t, target.AlreadyDownloaded())
	assert.Equal(t, []string{
		"/zips/dcsl_export_2022-05-17.zip",
		"/zips/dcsl_export_2023-01-09.zip",
		"/zips/dcsl_export_2023-12-01.zip",
	}, target.ExistingFiles())

	// callers can't mutate the target through the returned slice
	files := target.ExistingFiles()
	files[0] = "nope"
	assert.Equal(t, "/zips/dcsl_export_2022-05-17.zip", target.ExistingFiles()[0])

	// a site whose key starts with "dcsl_export_" keeps its zips to itself
	other, err := NewExportTarget(fs, mustURL(t, "https://jahia.example.com"), "dcsl_export_old", testDate, "/zips")
	require.NoError(t, err)
	assert.Equal(t, []string{"/zips/dcsl_export_old_export_2021-03-04.zip"}, other.ExistingFiles())
}

func TestNewExportTarget_ConfigErrors(t *testing.T) {
	base := mustURL(t, "https://jahia.example.com")

	tests := []struct {
		name    string
		base    *url.URL
		site    string
		date    string
		zipPath string
	}{
		{"empty site", base, "", testDate, "/zips"},
		{"site with slash", base, "../etc", testDate, "/zips"},
		{"site with glob", base, "dcsl*", testDate, "/zips"},
		{"no zip path", base, "dcsl", testDate, ""},
		{"bad date", base, "dcsl", "02/01/2024", "/zips"},
		{"no host", nil, "dcsl", testDate, "/zips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExportTarget(afero.NewMemMapFs(), tt.base, tt.site, tt.date, tt.zipPath)
			require.Error(t, err)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
