// Package crawler collects and downloads the PDF sheets linked from a CRI
// project listing, following pagination and one level of detail pages.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/projbank/projbank/internal/display"
)

// ErrNoStartURL is returned when no listing URL is configured.
var ErrNoStartURL = errors.New("start URL is required")

// defaultUserAgent mirrors a desktop browser; the portals serve an error
// page to obvious bots.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures a crawl.
type Options struct {
	// StartURL is the project listing page
	StartURL string
	// SiteSuffix bounds the crawl to hosts ending in it; defaults to the
	// StartURL host
	SiteSuffix string
	// SectionPath bounds followed links to one site section; defaults to
	// the StartURL path
	SectionPath string
	// MaxPages bounds how many pages one crawl may visit
	MaxPages int
	// UserAgent overrides the default browser user agent
	UserAgent string
	// Client overrides the default HTTP client
	Client *http.Client
}

// Crawler walks a project listing site and gathers PDF links.
type Crawler struct {
	opts  Options
	start *url.URL
}

// New creates a Crawler, deriving the site and section bounds from the
// start URL when not set explicitly.
func New(opts Options) (*Crawler, error) {
	if opts.StartURL == "" {
		return nil, ErrNoStartURL
	}
	start, err := url.Parse(opts.StartURL)
	if err != nil {
		return nil, fmt.Errorf("parse start URL: %w", err)
	}
	if opts.SiteSuffix == "" {
		opts.SiteSuffix = start.Host
	}
	if opts.SectionPath == "" {
		opts.SectionPath = start.Path
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 200
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Crawler{opts: opts, start: start}, nil
}

// CollectPDFURLs crawls the listing and its pagination plus one level of
// detail pages, returning every same-site PDF link found, sorted. Pages
// that fail to fetch are skipped so one broken detail page cannot sink the
// whole crawl.
func (c *Crawler) CollectPDFURLs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	visited := map[string]bool{}
	queue := []string{c.opts.StartURL}

	for len(queue) > 0 && len(visited) < c.opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pageURL := normalizeURL(queue[0])
		queue = queue[1:]
		if visited[pageURL] {
			continue
		}
		visited[pageURL] = true

		doc, err := c.fetchHTML(ctx, pageURL)
		if err != nil {
			display.Warn(fmt.Sprintf("failed to fetch %s: %v", pageURL, err))
			continue
		}

		walkLinks(doc, func(href string, relNext bool) {
			abs := c.resolve(pageURL, href)
			if abs == "" || !c.sameSite(abs) {
				return
			}
			if strings.Contains(strings.ToLower(abs), ".pdf") {
				seen[abs] = true
				return
			}
			if relNext && strings.Contains(abs, c.opts.SectionPath) {
				queue = append(queue, abs)
				return
			}
			if c.follow(abs) {
				queue = append(queue, abs)
			}
		})
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}

// follow reports whether a non-PDF link belongs to the crawl: pagination of
// the listing or a detail page directly under it.
func (c *Crawler) follow(abs string) bool {
	if !strings.Contains(abs, c.opts.SectionPath) {
		return false
	}
	start := strings.TrimSuffix(c.opts.StartURL, "/")
	if strings.Contains(abs, "page=") || strings.TrimSuffix(abs, "/") == start {
		return true
	}
	return strings.HasPrefix(abs, start+"/")
}

// Download fetches one PDF into destDir, keeping the remote filename. An
// existing local copy with the remote's exact size is reused without
// re-downloading.
func (c *Crawler) Download(ctx context.Context, pdfURL, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	dest := filepath.Join(destDir, urlFilename(pdfURL))

	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		size, err := c.remoteSize(ctx, pdfURL)
		// A failed HEAD keeps the local copy rather than re-downloading
		// the whole site.
		if err != nil || (size > 0 && size == info.Size()) {
			return dest, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.opts.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", pdfURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", pdfURL, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}
	return dest, nil
}

func (c *Crawler) remoteSize(ctx context.Context, pdfURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pdfURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.opts.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
}

func (c *Crawler) fetchHTML(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.opts.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return html.Parse(resp.Body)
}

func (c *Crawler) sameSite(abs string) bool {
	u, err := url.Parse(abs)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Host, c.opts.SiteSuffix)
}

func (c *Crawler) resolve(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return normalizeURL(b.ResolveReference(ref).String())
}

// normalizeURL drops fragments; the query survives because pagination lives
// there.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	return u.String()
}

// walkLinks visits every <a href> and <link rel="next" href> in the tree.
func walkLinks(n *html.Node, visit func(href string, relNext bool)) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "a":
			if href, ok := attr(n, "href"); ok {
				visit(href, false)
			}
		case "link":
			rel, _ := attr(n, "rel")
			if href, ok := attr(n, "href"); ok && strings.Contains(strings.ToLower(rel), "next") {
				visit(href, true)
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkLinks(child, visit)
	}
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// urlFilename derives the local filename for a PDF URL.
func urlFilename(pdfURL string) string {
	name := "document.pdf"
	if u, err := url.Parse(pdfURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			name = base
		}
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
