package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/JerryLinyx/NewsSummarizer/models"
)

var (
	// ErrNotFound is returned when no article matches the lookup.
	ErrNotFound = errors.New("article not found")
	// ErrDuplicateURL is returned when an insert hits the unique url index.
	ErrDuplicateURL = errors.New("article url already exists")
)

const uniqueViolation = "23505"

// ArticleStore persists articles through gorm.
type ArticleStore struct {
	db *gorm.DB
}

// NewArticleStore wires a gorm handle.
func NewArticleStore(db *gorm.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func (s *ArticleStore) FindByURL(ctx context.Context, url string) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).Where("url = ?", url).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find article by url: %w", err)
	}
	return &article, nil
}

func (s *ArticleStore) FindByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	return &article, nil
}

// FindByCategory expects an already normalized category.
func (s *ArticleStore) FindByCategory(ctx context.Context, category string) ([]models.Article, error) {
	articles := []models.Article{}
	if err := s.db.WithContext(ctx).Where("category = ?", category).Order("id ASC").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find articles by category %q: %w", category, err)
	}
	return articles, nil
}

// FindAll returns every article in insertion order.
func (s *ArticleStore) FindAll(ctx context.Context) ([]models.Article, error) {
	articles := []models.Article{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	return articles, nil
}

// Insert commits article as a new row and fills in its ID. A clash on the
// url index is reported as ErrDuplicateURL.
func (s *ArticleStore) Insert(ctx context.Context, article *models.Article) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(article).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateURL
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Delete removes the article inside a transaction; any failure rolls it back.
func (s *ArticleStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("id = ?", id).First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find article %d: %w", id, err)
		}

		res := tx.Delete(&article)
		if res.Error != nil {
			return fmt.Errorf("delete article %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CategoryCounts aggregates the number of articles per category.
func (s *ArticleStore) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	query, args, err := sq.Select("category", "COUNT(*) AS count").
		From(models.Article{}.TableName()).
		GroupBy("category").
		OrderBy("category ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}

	counts := []models.CategoryCount{}
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return counts, nil
}

// Ping checks that the database answers.
func (s *ArticleStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	// sqlite reports constraint failures only through the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
