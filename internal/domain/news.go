package domain

import (
	"context"
	"time"
)

// NewsCategory groups news posts on the public feed.
type NewsCategory string

const (
	CategoryUpdate       NewsCategory = "update"
	CategoryResearch     NewsCategory = "research"
	CategoryRelease      NewsCategory = "release"
	CategoryAnnouncement NewsCategory = "announcement"
)

// ParseNewsCategory reports whether s names a known category. Empty maps to "update".
func ParseNewsCategory(s string) (NewsCategory, bool) {
	switch c := NewsCategory(s); c {
	case "":
		return CategoryUpdate, true
	case CategoryUpdate, CategoryResearch, CategoryRelease, CategoryAnnouncement:
		return c, true
	}
	return "", false
}

// NewsItem is a markdown post on the public news feed.
// swagger:model NewsItem
type NewsItem struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Category  NewsCategory `json:"category"`
	Slug      *string      `json:"slug,omitempty"`
	Date      time.Time    `json:"date"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewsPage is one page of the public feed.
// swagger:model NewsPage
type NewsPage struct {
	News  []*NewsItem `json:"news"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// NewsRepository defines storage for news posts.
type NewsRepository interface {
	Create(ctx context.Context, item *NewsItem) error
	GetByID(ctx context.Context, id string) (*NewsItem, error)
	Count(ctx context.Context, category NewsCategory) (int, error)
	List(ctx context.Context, category NewsCategory, page PaginationParams) ([]*NewsItem, error)
	Update(ctx context.Context, item *NewsItem) error
	Delete(ctx context.Context, id string) error
}

// NewsService defines the public feed and the admin operations on news posts.
type NewsService interface {
	List(ctx context.Context, category string, page PaginationParams) (*NewsPage, error)
	Get(ctx context.Context, id string) (*NewsItem, error)
	Create(ctx context.Context, item *NewsItem) error
	Update(ctx context.Context, item *NewsItem) error
	Delete(ctx context.Context, id string) error
}
