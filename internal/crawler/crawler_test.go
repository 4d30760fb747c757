package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/fr/projects", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprintf(w, `<html><body>
				<a href="/docs/fiche-b.pdf">Fiche B</a>
			</body></html>`)
			return
		}
		fmt.Fprintf(w, `<html><head>
			<link rel="next" href="/fr/projects?page=2">
		</head><body>
			<a href="/docs/fiche-a.pdf#section">Fiche A</a>
			<a href="/fr/projects/elevage-caprin">Détail</a>
			<a href="https://example.com/ailleurs.pdf">Offsite</a>
			<a href="/fr/actualites">Hors section</a>
		</body></html>`)
	})
	mux.HandleFunc("/fr/projects/elevage-caprin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><a href="%s/docs/fiche-c.pdf">Fiche C</a></body></html>`, srv.URL)
	})
	mux.HandleFunc("/docs/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4 fake")
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectPDFURLs(t *testing.T) {
	srv := newTestSite(t)
	c, err := New(Options{StartURL: srv.URL + "/fr/projects"})
	require.NoError(t, err)

	urls, err := c.CollectPDFURLs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		srv.URL + "/docs/fiche-a.pdf",
		srv.URL + "/docs/fiche-b.pdf",
		srv.URL + "/docs/fiche-c.pdf",
	}, urls)
}

func TestCollectPDFURLs_BoundedByMaxPages(t *testing.T) {
	srv := newTestSite(t)
	c, err := New(Options{StartURL: srv.URL + "/fr/projects", MaxPages: 1})
	require.NoError(t, err)

	urls, err := c.CollectPDFURLs(context.Background())
	require.NoError(t, err)

	// Only the listing itself was visited; its direct PDF link is found
	// but the paginated and detail pages are not.
	assert.Equal(t, []string{srv.URL + "/docs/fiche-a.pdf"}, urls)
}

func TestCollectPDFURLs_Cancelled(t *testing.T) {
	srv := newTestSite(t)
	c, err := New(Options{StartURL: srv.URL + "/fr/projects"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.CollectPDFURLs(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDownload(t *testing.T) {
	srv := newTestSite(t)
	c, err := New(Options{StartURL: srv.URL + "/fr/projects"})
	require.NoError(t, err)

	dir := t.TempDir()
	dest, err := c.Download(context.Background(), srv.URL+"/docs/fiche-a.pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fiche-a.pdf"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "%PDF")
}

func TestDownload_SkipsCompleteLocalCopy(t *testing.T) {
	var gets int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
		}
		w.Header().Set("Content-Length", "4")
		if r.Method == http.MethodGet {
			fmt.Fprint(w, "data")
		}
	}))
	defer srv.Close()

	c, err := New(Options{StartURL: srv.URL + "/fr/projects"})
	require.NoError(t, err)

	dir := t.TempDir()
	ctx := context.Background()

	_, err = c.Download(ctx, srv.URL+"/docs/fiche.pdf", dir)
	require.NoError(t, err)
	_, err = c.Download(ctx, srv.URL+"/docs/fiche.pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, 1, gets, "second download must reuse the local copy")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	require.ErrorIs(t, err, ErrNoStartURL)
}

func TestURLFilename(t *testing.T) {
	assert.Equal(t, "fiche.pdf", urlFilename("https://x.ma/docs/fiche.pdf?v=2"))
	assert.Equal(t, "fiche.pdf", urlFilename("https://x.ma/docs/fiche"))
	assert.Equal(t, "document.pdf", urlFilename("https://x.ma/"))
}
