package domain

import (
	"context"
	"time"
)

// TimelineItem is a project milestone shown on the public timeline widget.
// swagger:model TimelineItem
type TimelineItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TimelineRepository defines storage for timeline milestones.
type TimelineRepository interface {
	Create(ctx context.Context, item *TimelineItem) error
	ListAll(ctx context.Context) ([]*TimelineItem, error)
	Update(ctx context.Context, item *TimelineItem) error
	Delete(ctx context.Context, id string) error
}

// TimelineService defines the public timeline and its admin operations.
type TimelineService interface {
	List(ctx context.Context) ([]*TimelineItem, error)
	Create(ctx context.Context, item *TimelineItem) error
	Update(ctx context.Context, item *TimelineItem) error
	Delete(ctx context.Context, id string) error
}
