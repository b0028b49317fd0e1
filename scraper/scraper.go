package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/JerryLinyx/NewsSummarizer/config"
)

// ErrEmptyURL is returned when Fetch is called without a URL.
var ErrEmptyURL = errors.New("article URL is empty")

// Page is the scraped part of an article.
type Page struct {
	Title string
	Text  string
}

// Fetcher downloads a URL and extracts its article text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Scraper downloads pages over HTTP and extracts the main text with
// readability, falling back to paragraph text when readability finds nothing.
type Scraper struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *slog.Logger
}

var _ Fetcher = (*Scraper)(nil)

// New builds a scraper; a nil client gets one with cfg.Timeout.
func New(cfg config.ScraperConfig, client *http.Client, logger *slog.Logger) *Scraper {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 5 << 20
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "NewsSummarizer/1.0"
	}
	return &Scraper{
		client:       client,
		userAgent:    userAgent,
		maxBodyBytes: maxBody,
		logger:       logger,
	}
}

// Fetch downloads rawURL and returns its title and body text. An empty
// Text is not an error here; callers decide what to do with it.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrEmptyURL
	}
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	body, err := s.download(ctx, pageURL.String())
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	page := &Page{}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		s.debug("readability failed, using fallback", "url", rawURL, "error", err)
	} else {
		page.Title = strings.TrimSpace(article.Title)
		page.Text = normalizeText(article.TextContent)
	}

	if page.Title == "" {
		page.Title = extractTitle(doc)
	}
	if page.Text == "" {
		page.Text = extractText(doc)
	}

	s.debug("article scraped", "url", rawURL, "title", page.Title, "chars", len(page.Text))
	return page, nil
}

func (s *Scraper) download(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return body, nil
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, aside, form").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.Join(strings.Fields(p.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n")
	}
	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}

// normalizeText collapses whitespace inside lines and drops blank lines.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func (s *Scraper) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
