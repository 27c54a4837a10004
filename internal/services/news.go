package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neurobiomark/internal/domain"
)

const (
	defaultNewsPageSize = 5
	maxNewsPageSize     = 50
)

type newsService struct {
	repo domain.NewsRepository
	now  func() time.Time
}

// NewNewsService creates a NewsService backed by the given repository.
func NewNewsService(repo domain.NewsRepository) domain.NewsService {
	return &newsService{repo: repo, now: time.Now}
}

// List returns one page of the feed. "all" or an empty category means no filter;
// a category no post can carry yields an empty page.
func (s *newsService) List(ctx context.Context, category string, page domain.PaginationParams) (*domain.NewsPage, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = defaultNewsPageSize
	}
	if page.PageSize > maxNewsPageSize {
		page.PageSize = maxNewsPageSize
	}
	var cat domain.NewsCategory
	if c := strings.TrimSpace(category); c != "" && c != "all" {
		parsed, ok := domain.ParseNewsCategory(c)
		if !ok {
			return &domain.NewsPage{News: []*domain.NewsItem{}, Page: page.Page, Pages: 1}, nil
		}
		cat = parsed
	}

	total, err := s.repo.Count(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to count news: %w", err)
	}
	items, err := s.repo.List(ctx, cat, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	if items == nil {
		items = []*domain.NewsItem{}
	}
	return &domain.NewsPage{
		News:  items,
		Total: total,
		Page:  page.Page,
		Pages: domain.TotalPages(total, page.PageSize),
	}, nil
}

func (s *newsService) Get(ctx context.Context, id string) (*domain.NewsItem, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *newsService) Create(ctx context.Context, item *domain.NewsItem) error {
	if err := s.prepare(item); err != nil {
		return err
	}
	now := s.now()
	if item.Date.IsZero() {
		item.Date = now
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}
	return nil
}

func (s *newsService) Update(ctx context.Context, item *domain.NewsItem) error {
	if !validID(item.ID) {
		return domain.ErrNotFound
	}
	if err := s.prepare(item); err != nil {
		return err
	}
	item.UpdatedAt = s.now()
	return s.repo.Update(ctx, item)
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// prepare trims fields, applies the default category and checks required fields.
func (s *newsService) prepare(item *domain.NewsItem) error {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" || strings.TrimSpace(item.Content) == "" {
		return fmt.Errorf("%w: Title and content are required", domain.ErrInvalidInput)
	}
	cat, ok := domain.ParseNewsCategory(string(item.Category))
	if !ok {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, item.Category)
	}
	item.Category = cat
	if item.Slug != nil {
		slug := strings.TrimSpace(*item.Slug)
		if slug == "" {
			item.Slug = nil
		} else {
			item.Slug = &slug
		}
	}
	return nil
}
