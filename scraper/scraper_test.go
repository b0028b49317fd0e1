package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/JerryLinyx/NewsSummarizer/config"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Big News Today</title>
  <meta property="og:title" content="Big News Today">
</head>
<body>
  <nav><a href="/">Home</a> <a href="/world">World</a></nav>
  <article>
    <h1>Big News Today</h1>
    <p>The city council approved a new transit plan on Tuesday, committing funds to expand light rail service across the northern districts over the next five years.</p>
    <p>Officials said the expansion would cut average commute times, reduce congestion on arterial roads and connect several neighborhoods that currently rely on a single bus line.</p>
    <p>Construction is expected to begin next spring, pending a final environmental review and the approval of a federal grant that would cover roughly a third of the cost.</p>
  </article>
  <footer>Copyright Example News</footer>
</body>
</html>`

func TestScraperFetch(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	s := New(config.ScraperConfig{UserAgent: "test-agent"}, server.Client(), nil)
	page, err := s.Fetch(context.Background(), server.URL+"/news/transit")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotUA != "test-agent" {
		t.Fatalf("unexpected user agent: %q", gotUA)
	}
	if page.Title != "Big News Today" {
		t.Fatalf("unexpected title: %q", page.Title)
	}
	if !strings.Contains(page.Text, "approved a new transit plan") {
		t.Fatalf("article text missing, got %q", page.Text)
	}
	if strings.Contains(page.Text, "Copyright Example News") {
		t.Fatalf("footer leaked into text: %q", page.Text)
	}
}

func TestScraperFetchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := New(config.ScraperConfig{}, server.Client(), nil)
	if _, err := s.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestScraperFetchEmptyURL(t *testing.T) {
	t.Parallel()

	s := New(config.ScraperConfig{}, nil, nil)
	if _, err := s.Fetch(context.Background(), "  "); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
}

func TestScraperFetchUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	s := New(config.ScraperConfig{}, nil, nil)
	if _, err := s.Fetch(context.Background(), addr); err == nil {
		t.Fatalf("expected error for closed server")
	}
}

func TestExtractFallbacks(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Plain Title</title><script>var x = 1;</script></head>
	<body><header>Site header</header><p>  First   paragraph. </p><p></p><p>Second paragraph.</p></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	if got := extractTitle(doc); got != "Plain Title" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := extractText(doc); got != "First paragraph.\nSecond paragraph." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	in := "  line   one \n\n\t\nline\ttwo  "
	if got := normalizeText(in); got != "line one\nline two" {
		t.Fatalf("unexpected normalized text: %q", got)
	}
}
