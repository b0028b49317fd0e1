package services

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JerryLinyx/NewsSummarizer/models"
	"github.com/JerryLinyx/NewsSummarizer/scraper"
	"github.com/JerryLinyx/NewsSummarizer/store"
	"github.com/JerryLinyx/NewsSummarizer/summarizer"
)

// ArticleStore is the persistence the pipeline needs. Lookups report a miss
// with store.ErrNotFound and Insert reports a url clash with store.ErrDuplicateURL.
type ArticleStore interface {
	FindByURL(ctx context.Context, url string) (*models.Article, error)
	FindByID(ctx context.Context, id uint) (*models.Article, error)
	FindByCategory(ctx context.Context, category string) ([]models.Article, error)
	FindAll(ctx context.Context) ([]models.Article, error)
	Insert(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	CategoryCounts(ctx context.Context) ([]models.CategoryCount, error)
}

var _ ArticleStore = (*store.ArticleStore)(nil)

// Deps groups the collaborators of the pipeline.
type Deps struct {
	Fetcher   scraper.Fetcher
	Generator summarizer.Generator
	Store     ArticleStore
	Logger    *slog.Logger
}

// ArticleService runs the fetch, summarize and persist pipeline and the
// read and delete operations around it.
type ArticleService struct {
	fetcher   scraper.Fetcher
	generator summarizer.Generator
	store     ArticleStore
	logger    *slog.Logger
}

func NewArticleService(deps Deps) (*ArticleService, error) {
	if deps.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if deps.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if deps.Store == nil {
		return nil, errors.New("store is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleService{
		fetcher:   deps.Fetcher,
		generator: deps.Generator,
		store:     deps.Store,
		logger:    logger.With("component", "article_service"),
	}, nil
}

// Ingest returns the stored article for rawURL, creating it on first sight.
// created reports whether this call inserted the row.
func (s *ArticleService) Ingest(ctx context.Context, rawURL string) (article *models.Article, created bool, err error) {
	const op = "ingest"

	articleURL := strings.TrimSpace(rawURL)
	if articleURL == "" {
		return nil, false, invalidInput(op, "URL cannot be empty")
	}
	if !validURL(articleURL) {
		return nil, false, invalidInput(op, "URL must be an absolute http or https URL")
	}

	existing, err := s.store.FindByURL(ctx, articleURL)
	switch {
	case err == nil:
		s.logger.Info("article already stored", "url", articleURL, "id", existing.ID)
		return existing, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, false, storeUnavailable(op, err)
	}

	summary, err := s.summarize(ctx, op, articleURL)
	if err != nil {
		return nil, false, err
	}

	article = summary.ToArticle()
	if err := s.store.Insert(ctx, article); err != nil {
		if errors.Is(err, store.ErrDuplicateURL) {
			return s.loadWinner(ctx, op, articleURL)
		}
		s.logger.Error("persist article", "url", articleURL, "error", err)
		return nil, false, storeUnavailable(op, err)
	}

	s.logger.Info("article stored", "url", articleURL, "id", article.ID, "category", article.Category)
	return article, true, nil
}

func (s *ArticleService) summarize(ctx context.Context, op, articleURL string) (*models.ArticleSummary, error) {
	page, err := s.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		s.logger.Warn("fetch article", "url", articleURL, "error", err)
		return nil, generationFailed(op, "failed to fetch article content", err)
	}
	text := strings.TrimSpace(page.Text)
	if text == "" {
		return nil, generationFailed(op, "article has no readable content", nil)
	}

	result, err := s.generator.Generate(ctx, text)
	if err != nil {
		s.logger.Warn("generate summary", "url", articleURL, "error", err)
		return nil, generationFailed(op, "failed to generate summary", err)
	}

	return &models.ArticleSummary{
		Title:    strings.TrimSpace(page.Title),
		URL:      articleURL,
		Content:  text,
		Summary:  result.Summary,
		Category: normalizeCategory(result.Category),
	}, nil
}

// loadWinner handles losing a same-url insert race: the row committed by
// the other request is returned instead.
func (s *ArticleService) loadWinner(ctx context.Context, op, articleURL string) (*models.Article, bool, error) {
	winner, err := s.store.FindByURL(ctx, articleURL)
	if err != nil {
		return nil, false, storeUnavailable(op, err)
	}
	s.logger.Info("concurrent ingest resolved", "url", articleURL, "id", winner.ID)
	return winner, false, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	const op = "get article"

	if id == 0 {
		return nil, invalidInput(op, "article ID must be a positive integer")
	}
	article, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(op, "Article not found")
		}
		return nil, storeUnavailable(op, err)
	}
	return article, nil
}

// GetAll lists every article in insertion order. An empty store yields an
// empty slice.
func (s *ArticleService) GetAll(ctx context.Context) ([]models.Article, error) {
	articles, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storeUnavailable("list articles", err)
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

func (s *ArticleService) GetByCategory(ctx context.Context, category string) ([]models.Article, error) {
	const op = "list articles by category"

	normalized := normalizeCategory(category)
	if normalized == "" {
		return nil, invalidInput(op, "category cannot be empty")
	}
	articles, err := s.store.FindByCategory(ctx, normalized)
	if err != nil {
		return nil, storeUnavailable(op, err)
	}
	if len(articles) == 0 {
		return nil, notFound(op, "No articles found in category "+normalized)
	}
	return articles, nil
}

func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	const op = "delete article"

	if id == 0 {
		return invalidInput(op, "article ID must be a positive integer")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(op, "Article not found")
		}
		s.logger.Error("delete article", "id", id, "error", err)
		return storeUnavailable(op, err)
	}
	s.logger.Info("article deleted", "id", id)
	return nil
}

// Categories lists the distinct categories with their article counts.
func (s *ArticleService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	counts, err := s.store.CategoryCounts(ctx)
	if err != nil {
		return nil, storeUnavailable("list categories", err)
	}
	if counts == nil {
		counts = []models.CategoryCount{}
	}
	return counts, nil
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
