package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurobiomark/internal/domain"
)

// fakeTimelineRepo implements domain.TimelineRepository for tests.
type fakeTimelineRepo struct {
	items []*domain.TimelineItem
}

func (f *fakeTimelineRepo) Create(ctx context.Context, item *domain.TimelineItem) error {
	item.ID = uuid.NewString()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeTimelineRepo) ListAll(ctx context.Context) ([]*domain.TimelineItem, error) {
	return f.items, nil
}

func (f *fakeTimelineRepo) Update(ctx context.Context, item *domain.TimelineItem) error {
	for i, it := range f.items {
		if it.ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTimelineRepo) Delete(ctx context.Context, id string) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func TestTimelineService(t *testing.T) {
	repo := &fakeTimelineRepo{}
	svc := NewTimelineService(repo)
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	err = svc.Create(ctx, &domain.TimelineItem{Title: ""})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "date is required")

	item := &domain.TimelineItem{Title: " Seed funding ", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Order: 2}
	require.NoError(t, svc.Create(ctx, item))
	assert.Equal(t, "Seed funding", item.Title)
	assert.False(t, item.CreatedAt.IsZero())

	item.Description = "Closed the round"
	require.NoError(t, svc.Update(ctx, item))
	require.ErrorIs(t, svc.Update(ctx, &domain.TimelineItem{ID: uuid.NewString(), Title: "x", Date: time.Now()}), domain.ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, item.ID))
	require.ErrorIs(t, svc.Delete(ctx, "x"), domain.ErrNotFound)
}
