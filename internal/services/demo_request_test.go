package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurobiomark/internal/domain"
)

// fakeDemoRequestRepo is an in-memory domain.DemoRequestRepository with the same
// filter and ordering semantics as the Postgres implementation.
type fakeDemoRequestRepo struct {
	mu        sync.Mutex
	items     []*domain.DemoRequest
	existsErr error
	createErr error
	listErr   error
	calls     int
}

func (f *fakeDemoRequestRepo) Create(ctx context.Context, req *domain.DemoRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	req.ID = uuid.NewString()
	cp := *req
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeDemoRequestRepo) ExistsSince(ctx context.Context, email string, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, it := range f.items {
		if it.Email == email && !it.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDemoRequestRepo) filtered(filter domain.DemoRequestFilter) []*domain.DemoRequest {
	var out []*domain.DemoRequest
	search := strings.ToLower(filter.Search)
	for _, it := range f.items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) && !strings.Contains(strings.ToLower(it.Email), search) {
			continue
		}
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeDemoRequestRepo) Count(ctx context.Context, filter domain.DemoRequestFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return 0, f.listErr
	}
	return len(f.filtered(filter)), nil
}

func (f *fakeDemoRequestRepo) List(ctx context.Context, filter domain.DemoRequestFilter, page domain.PaginationParams) ([]*domain.DemoRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := f.filtered(filter)
	start := page.Offset()
	if start >= len(all) {
		return nil, nil
	}
	end := start + page.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeDemoRequestRepo) ListAll(ctx context.Context) ([]*domain.DemoRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filtered(domain.DemoRequestFilter{}), nil
}

func (f *fakeDemoRequestRepo) Update(ctx context.Context, id string, upd domain.DemoRequestUpdate) (*domain.DemoRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, it := range f.items {
		if it.ID == id {
			if upd.Status != nil {
				it.Status = *upd.Status
			}
			if upd.Notes != nil {
				it.Notes = *upd.Notes
			}
			cp := *it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDemoRequestRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeDemoRequestRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.items[:0]
	var n int64
	for _, it := range f.items {
		if drop[it.ID] {
			n++
			continue
		}
		kept = append(kept, it)
	}
	f.items = kept
	return n, nil
}

func (f *fakeDemoRequestRepo) CountByDay(ctx context.Context) ([]*domain.DailyCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDay := map[string]int{}
	for _, it := range f.items {
		byDay[it.CreatedAt.UTC().Format("2006-01-02")]++
	}
	var out []*domain.DailyCount
	for d, n := range byDay {
		out = append(out, &domain.DailyCount{Day: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// fakeCaptcha implements domain.CaptchaVerifier for tests.
type fakeCaptcha struct {
	ok     bool
	err    error
	calls  int
	lastIP string
}

func (f *fakeCaptcha) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	f.calls++
	f.lastIP = remoteIP
	return f.ok, f.err
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	mu         sync.Mutex
	demoErr    error
	contactErr error
	demo       []*domain.DemoRequestEmailData
	contact    []*domain.ContactEmailData
}

func (f *fakeEmailService) SendDemoRequestNotification(ctx context.Context, data *domain.DemoRequestEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.demo = append(f.demo, data)
	return f.demoErr
}

func (f *fakeEmailService) SendContactMessage(ctx context.Context, data *domain.ContactEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contact = append(f.contact, data)
	return f.contactErr
}

// fakeSink implements domain.RowAppender for tests.
type fakeSink struct {
	rows [][]string
	err  error
}

func (f *fakeSink) AppendRow(ctx context.Context, row []string) error {
	f.rows = append(f.rows, row)
	return f.err
}

// inlineTasks implements domain.TaskRunner by running tasks immediately and
// recording their outcome instead of surfacing it.
type inlineTasks struct {
	names  []string
	failed map[string]error
}

func (r *inlineTasks) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	r.names = append(r.names, name)
	if err := fn(ctx); err != nil {
		if r.failed == nil {
			r.failed = map[string]error{}
		}
		r.failed[name] = err
	}
}

type pipeline struct {
	repo    *fakeDemoRequestRepo
	captcha *fakeCaptcha
	email   *fakeEmailService
	sink    *fakeSink
	tasks   *inlineTasks
	now     time.Time
	svc     domain.DemoRequestService
}

func newPipeline(requireCaptcha bool) *pipeline {
	p := &pipeline{
		repo:    &fakeDemoRequestRepo{},
		captcha: &fakeCaptcha{ok: true},
		email:   &fakeEmailService{},
		sink:    &fakeSink{},
		tasks:   &inlineTasks{},
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	p.svc = NewDemoRequestService(p.repo, p.captcha, p.email, p.sink, p.tasks, DemoRequestConfig{
		RequireCaptcha: requireCaptcha,
		NotifyTo:       "ops@neurobiomark.org",
		Now:            func() time.Time { return p.now },
	})
	return p
}

func annSubmission() domain.DemoRequestSubmission {
	return domain.DemoRequestSubmission{
		Name:         "Ann Lee",
		Email:        "ann@x.org",
		Purpose:      "Evaluating the platform for a clinical research pilot study.",
		CaptchaToken: "token",
		IP:           "203.0.113.9",
	}
}

func TestDemoRequestService_Submit_PersistsFreshRequest(t *testing.T) {
	p := newPipeline(true)

	req, err := p.svc.Submit(context.Background(), annSubmission())
	require.NoError(t, err)
	require.NotNil(t, req)

	require.Len(t, p.repo.items, 1)
	stored := p.repo.items[0]
	assert.Equal(t, domain.StatusNew, stored.Status)
	assert.Equal(t, "", stored.Notes)
	assert.Equal(t, "ann@x.org", stored.Email)
	assert.Equal(t, "203.0.113.9", stored.IP)
	assert.Equal(t, p.now, stored.CreatedAt)
	assert.Equal(t, "203.0.113.9", p.captcha.lastIP)

	require.Len(t, p.email.demo, 1)
	assert.Equal(t, "ops@neurobiomark.org", p.email.demo[0].To)
	assert.Equal(t, "ann@x.org", p.email.demo[0].Email)
	assert.Contains(t, p.email.demo[0].Purpose, "clinical research")

	require.Len(t, p.sink.rows, 1)
	assert.Equal(t, []string{"Ann Lee", "ann@x.org", "203.0.113.9", "2026-03-01T12:00:00Z"}, p.sink.rows[0])
	assert.Equal(t, []string{"demo_request_email", "demo_request_sheet_sync"}, p.tasks.names)
}

func TestDemoRequestService_Submit_DuplicateWindow(t *testing.T) {
	p := newPipeline(false)
	ctx := context.Background()

	_, err := p.svc.Submit(ctx, annSubmission())
	require.NoError(t, err)

	p.now = p.now.Add(23 * time.Hour)
	again := annSubmission()
	again.Email = "  ANN@x.org "
	_, err = p.svc.Submit(ctx, again)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Len(t, p.repo.items, 1)

	p.now = p.now.Add(2 * time.Hour)
	_, err = p.svc.Submit(ctx, annSubmission())
	require.NoError(t, err)
	assert.Len(t, p.repo.items, 2)
}

func TestDemoRequestService_Submit_Failures(t *testing.T) {
	tests := []struct {
		name           string
		requireCaptcha bool
		setup          func(p *pipeline, sub *domain.DemoRequestSubmission)
		wantErr        error
		wantCaptcha    int
		wantStored     int
	}{
		{
			name:       "purpose too short",
			setup:      func(p *pipeline, sub *domain.DemoRequestSubmission) { sub.Purpose = strings.Repeat("x", 29) },
			wantErr:    domain.ErrInvalidInput,
			wantStored: 0,
		},
		{
			name:           "purpose too long rejected before captcha",
			requireCaptcha: true,
			setup:          func(p *pipeline, sub *domain.DemoRequestSubmission) { sub.Purpose = strings.Repeat("x", 1001) },
			wantErr:        domain.ErrInvalidInput,
			wantCaptcha:    0,
		},
		{
			name:           "captcha token missing in production",
			requireCaptcha: true,
			setup:          func(p *pipeline, sub *domain.DemoRequestSubmission) { sub.CaptchaToken = "" },
			wantErr:        domain.ErrInvalidInput,
		},
		{
			name:           "captcha rejected",
			requireCaptcha: true,
			setup:          func(p *pipeline, sub *domain.DemoRequestSubmission) { p.captcha.ok = false },
			wantErr:        domain.ErrCaptchaFailed,
			wantCaptcha:    1,
		},
		{
			name:           "captcha verifier error",
			requireCaptcha: true,
			setup:          func(p *pipeline, sub *domain.DemoRequestSubmission) { p.captcha.err = errors.New("timeout") },
			wantErr:        domain.ErrCaptchaFailed,
			wantCaptcha:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(tt.requireCaptcha)
			sub := annSubmission()
			tt.setup(p, &sub)
			_, err := p.svc.Submit(context.Background(), sub)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCaptcha, p.captcha.calls)
			assert.Len(t, p.repo.items, tt.wantStored)
			assert.Empty(t, p.tasks.names)
		})
	}
}

func TestDemoRequestService_Submit_NonProductionSkipsCaptcha(t *testing.T) {
	p := newPipeline(false)
	p.captcha.ok = false
	sub := annSubmission()
	sub.CaptchaToken = ""

	_, err := p.svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Zero(t, p.captcha.calls)
	assert.Len(t, p.repo.items, 1)
}

func TestDemoRequestService_Submit_BestEffortFailuresAreIsolated(t *testing.T) {
	p := newPipeline(false)
	p.email.demoErr = errors.New("mailbox unavailable")
	p.sink.err = errors.New("sheets quota")

	req, err := p.svc.Submit(context.Background(), annSubmission())
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Len(t, p.repo.items, 1)
	assert.Len(t, p.tasks.failed, 2)
}

func TestDemoRequestService_Submit_StoreFailures(t *testing.T) {
	p := newPipeline(false)
	p.repo.existsErr = errors.New("connection refused")
	_, err := p.svc.Submit(context.Background(), annSubmission())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrRateLimited))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))

	p = newPipeline(false)
	p.repo.createErr = errors.New("disk full")
	_, err = p.svc.Submit(context.Background(), annSubmission())
	require.Error(t, err)
	assert.Empty(t, p.tasks.names, "no follow-ups without a persisted request")
}

func TestDemoRequestService_Submit_UnknownIP(t *testing.T) {
	p := newPipeline(false)
	sub := annSubmission()
	sub.IP = ""
	req, err := p.svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownIP, req.IP)
}

// seedRequests stores n requests named "<prefix> i" with strictly decreasing age.
func seedRequests(repo *fakeDemoRequestRepo, prefix string, status domain.DemoRequestStatus, n int, base time.Time) {
	for i := 1; i <= n; i++ {
		r := domain.NewDemoRequest(fmt.Sprintf("%s %02d", prefix, i), fmt.Sprintf("%s%02d@example.org", strings.ToLower(prefix), i), strings.Repeat("p", 30), "", base.Add(-time.Duration(i)*time.Minute))
		r.Status = status
		_ = repo.Create(context.Background(), r)
	}
}

func TestDemoRequestService_List(t *testing.T) {
	p := newPipeline(false)
	base := p.now
	seedRequests(p.repo, "Ann", domain.StatusNew, 15, base)
	seedRequests(p.repo, "Bob", domain.StatusNew, 4, base.Add(-time.Hour))
	seedRequests(p.repo, "Annie", domain.StatusContacted, 3, base.Add(-2*time.Hour))
	ctx := context.Background()

	t.Run("page two of search and status", func(t *testing.T) {
		got, err := p.svc.List(ctx, domain.DemoRequestQuery{Page: 2, Search: "ann", Status: "new"})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Pages)
		require.Len(t, got.Items, 5)
		for i, it := range got.Items {
			assert.Equal(t, fmt.Sprintf("Ann %02d", 11+i), it.Name)
		}
	})

	t.Run("search matches email case-insensitively", func(t *testing.T) {
		got, err := p.svc.List(ctx, domain.DemoRequestQuery{Search: "  BOB03@EXAMPLE "})
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Bob 03", got.Items[0].Name)
	})

	t.Run("unknown status is ignored", func(t *testing.T) {
		got, err := p.svc.List(ctx, domain.DemoRequestQuery{Page: 0, Status: "archived"})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Pages)
		assert.Len(t, got.Items, AdminPageSize)
		assert.Equal(t, "Ann 01", got.Items[0].Name)
	})

	t.Run("status is trimmed and case-insensitive", func(t *testing.T) {
		got, err := p.svc.List(ctx, domain.DemoRequestQuery{Status: " Contacted "})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Pages)
		assert.Len(t, got.Items, 3)
	})

	t.Run("no match keeps the shape", func(t *testing.T) {
		got, err := p.svc.List(ctx, domain.DemoRequestQuery{Search: "zed"})
		require.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
		assert.Equal(t, 1, got.Pages)
	})

	t.Run("identical queries are idempotent", func(t *testing.T) {
		q := domain.DemoRequestQuery{Page: 1, Search: "ann", Status: "new"}
		a, err := p.svc.List(ctx, q)
		require.NoError(t, err)
		b, err := p.svc.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("store failure", func(t *testing.T) {
		p.repo.listErr = errors.New("down")
		defer func() { p.repo.listErr = nil }()
		_, err := p.svc.List(ctx, domain.DemoRequestQuery{})
		require.Error(t, err)
	})
}

func TestDemoRequestService_Update(t *testing.T) {
	p := newPipeline(false)
	seedRequests(p.repo, "Ann", domain.StatusNew, 1, p.now)
	id := p.repo.items[0].ID
	ctx := context.Background()

	contacted := domain.DemoRequestStatus("Contacted")
	notes := "called on monday"
	got, err := p.svc.Update(ctx, id, domain.DemoRequestUpdate{Status: &contacted, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusContacted, got.Status)
	assert.Equal(t, notes, got.Notes)

	bogus := domain.DemoRequestStatus("archived")
	_, err = p.svc.Update(ctx, id, domain.DemoRequestUpdate{Status: &bogus})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.svc.Update(ctx, id, domain.DemoRequestUpdate{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	long := strings.Repeat("n", domain.MaxNotesLen+1)
	_, err = p.svc.Update(ctx, id, domain.DemoRequestUpdate{Notes: &long})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.svc.Update(ctx, uuid.NewString(), domain.DemoRequestUpdate{Notes: &notes})
	require.ErrorIs(t, err, domain.ErrNotFound)

	calls := p.repo.calls
	_, err = p.svc.Update(ctx, "not-a-uuid", domain.DemoRequestUpdate{Notes: &notes})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, calls, p.repo.calls)
}

func TestDemoRequestService_Delete(t *testing.T) {
	p := newPipeline(false)
	seedRequests(p.repo, "Ann", domain.StatusNew, 2, p.now)
	ctx := context.Background()

	require.NoError(t, p.svc.Delete(ctx, p.repo.items[0].ID))
	assert.Len(t, p.repo.items, 1)
	require.ErrorIs(t, p.svc.Delete(ctx, uuid.NewString()), domain.ErrNotFound)
	require.ErrorIs(t, p.svc.Delete(ctx, "42"), domain.ErrNotFound)
}

func TestDemoRequestService_BulkDelete(t *testing.T) {
	p := newPipeline(false)
	seedRequests(p.repo, "Ann", domain.StatusNew, 3, p.now)
	ctx := context.Background()

	calls := p.repo.calls
	err := p.svc.BulkDelete(ctx, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "No ids provided")
	require.ErrorIs(t, p.svc.BulkDelete(ctx, []string{}), domain.ErrInvalidInput)
	assert.Equal(t, calls, p.repo.calls, "no store call for an empty id list")

	ids := []string{p.repo.items[0].ID, p.repo.items[0].ID, "garbage", p.repo.items[1].ID, uuid.NewString()}
	require.NoError(t, p.svc.BulkDelete(ctx, ids))
	assert.Len(t, p.repo.items, 1)

	calls = p.repo.calls
	require.NoError(t, p.svc.BulkDelete(ctx, []string{"garbage"}))
	assert.Equal(t, calls, p.repo.calls)
}

func TestDemoRequestService_ExportAndStats(t *testing.T) {
	p := newPipeline(false)
	seedRequests(p.repo, "Ann", domain.StatusNew, 2, p.now)
	seedRequests(p.repo, "Bob", domain.StatusNew, 1, p.now.Add(-48*time.Hour))
	ctx := context.Background()

	all, err := p.svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ann 01", all[0].Name)
	assert.Equal(t, "Bob 01", all[2].Name)

	stats, err := p.svc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, domain.DailyCount{Day: "2026-02-27", Count: 1}, *stats[0])
	assert.Equal(t, domain.DailyCount{Day: "2026-03-01", Count: 2}, *stats[1])
}
