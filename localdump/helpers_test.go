package localdump

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toothbrush/jahia-dump/jahia"
	"github.com/toothbrush/jahia-dump/tracer"
)

const testDate = "2024-01-02"

type row struct {
	site, step string
	status     tracer.Status
}

type recordingTracer struct {
	mu   sync.Mutex
	rows []row
}

func (r *recordingTracer) WriteRow(site string, step string, status tracer.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, row{site, step, status})
}

func (r *recordingTracer) Rows() []row {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]row{}, r.rows...)
}

// fakeJahia serves a zip-ish body for every site, except those listed in failing (500) or
// empty (200 with a tiny body).
type fakeJahia struct {
	server   *httptest.Server
	requests atomic.Int32
	failing  map[string]bool
	empty    map[string]bool
}

func newFakeJahia(t *testing.T) *fakeJahia {
	t.Helper()

	f := &fakeJahia{failing: map[string]bool{}, empty: map[string]bool{}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		site := r.URL.Query().Get("sitebox")

		switch {
		case r.Method != http.MethodPost:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case !strings.HasPrefix(r.URL.Path, "/cms/export/default/"+site+"_export_"):
			w.WriteHeader(http.StatusNotFound)
		case f.failing[site]:
			w.WriteHeader(http.StatusInternalServerError)
		case f.empty[site]:
			_, _ = w.Write([]byte("<html>oops</html>"))
		default:
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write(zipBody(site))
		}
	}))
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeJahia) session(t *testing.T) *jahia.Session {
	t.Helper()

	u, err := url.Parse(f.server.URL)
	require.NoError(t, err)

	s, err := jahia.NewSession(u.Scheme, u.Host, "bob", "secret")
	require.NoError(t, err)
	return s
}

// larger than one chunk, so the streaming loop goes around a few times
func zipBody(site string) []byte {
	return []byte("PK" + strings.Repeat(site+"-", 3000))
}
