package models

import (
	"time"
)

// Article is a summarized news article. Rows are written once by the
// ingestion pipeline and only ever removed by an explicit delete.
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     *string   `gorm:"index" json:"title"`
	URL       string    `gorm:"type:varchar(2048);uniqueIndex;not null" json:"url"`
	Content   string    `gorm:"type:text;not null" json:"content,omitempty"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	Category  string    `gorm:"type:varchar(100);index;not null" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Article
func (Article) TableName() string {
	return "articles"
}

// ArticleSummary carries scraped and generated fields between the
// summarize and persist stages. It is never stored as is.
type ArticleSummary struct {
	Title    string
	URL      string
	Content  string
	Summary  string
	Category string
}

// ToArticle builds the row that will be inserted for this summary.
func (s ArticleSummary) ToArticle() *Article {
	a := &Article{
		URL:      s.URL,
		Content:  s.Content,
		Summary:  s.Summary,
		Category: s.Category,
	}
	if s.Title != "" {
		title := s.Title
		a.Title = &title
	}
	return a
}

// CategoryCount is one row of the per-category aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
