package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neurobiomark/internal/domain"
)

type timelineService struct {
	repo domain.TimelineRepository
	now  func() time.Time
}

// NewTimelineService creates a TimelineService backed by the given repository.
func NewTimelineService(repo domain.TimelineRepository) domain.TimelineService {
	return &timelineService{repo: repo, now: time.Now}
}

// List returns every milestone ordered by date, then by display order.
func (s *timelineService) List(ctx context.Context) ([]*domain.TimelineItem, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	if items == nil {
		items = []*domain.TimelineItem{}
	}
	return items, nil
}

func (s *timelineService) Create(ctx context.Context, item *domain.TimelineItem) error {
	if err := validateTimelineItem(item); err != nil {
		return err
	}
	now := s.now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create timeline item: %w", err)
	}
	return nil
}

func (s *timelineService) Update(ctx context.Context, item *domain.TimelineItem) error {
	if !validID(item.ID) {
		return domain.ErrNotFound
	}
	if err := validateTimelineItem(item); err != nil {
		return err
	}
	item.UpdatedAt = s.now()
	return s.repo.Update(ctx, item)
}

func (s *timelineService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validateTimelineItem(item *domain.TimelineItem) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Description = strings.TrimSpace(item.Description)
	var errs []string
	if item.Title == "" {
		errs = append(errs, "title is required")
	}
	if item.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}
