package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"neurobiomark/internal/domain"
)

const (
	// duplicateWindow is the trailing period in which one email may submit only once.
	duplicateWindow = 24 * time.Hour
	// AdminPageSize is the fixed page size of the admin request list.
	AdminPageSize = 10
)

// DemoRequestConfig holds the policy knobs of the intake pipeline.
type DemoRequestConfig struct {
	// RequireCaptcha enables captcha enforcement; only production sets it.
	RequireCaptcha bool
	// NotifyTo is the operations mailbox that receives new-request emails.
	NotifyTo string
	Timeout  time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
}

type demoRequestService struct {
	repo         domain.DemoRequestRepository
	captcha      domain.CaptchaVerifier
	emailService domain.EmailService
	sink         domain.RowAppender
	tasks        domain.TaskRunner
	cfg          DemoRequestConfig
}

// NewDemoRequestService creates a DemoRequestService. Email and sink run as detached
// tasks on tasks; their failures never reach the submitter.
func NewDemoRequestService(repo domain.DemoRequestRepository, captcha domain.CaptchaVerifier, emailService domain.EmailService, sink domain.RowAppender, tasks domain.TaskRunner, cfg DemoRequestConfig) domain.DemoRequestService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &demoRequestService{
		repo:         repo,
		captcha:      captcha,
		emailService: emailService,
		sink:         sink,
		tasks:        tasks,
		cfg:          cfg,
	}
}

// Submit runs the intake pipeline: validate, verify captcha, enforce the duplicate
// guard, persist, then dispatch the notification email and the sheet sync.
// The duplicate check and the insert are not atomic; two simultaneous submissions
// from one email can both pass the guard.
func (s *demoRequestService) Submit(ctx context.Context, sub domain.DemoRequestSubmission) (*domain.DemoRequest, error) {
	sub = sub.Normalize()
	if errs := sub.Validate(s.cfg.RequireCaptcha); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if s.cfg.RequireCaptcha {
		ok, err := s.captcha.Verify(ctx, sub.CaptchaToken, sub.IP)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCaptchaFailed, err)
		}
		if !ok {
			return nil, domain.ErrCaptchaFailed
		}
	}

	now := s.cfg.Now()
	exists, err := s.repo.ExistsSince(ctx, sub.Email, now.Add(-duplicateWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to check recent requests: %w", err)
	}
	if exists {
		return nil, domain.ErrRateLimited
	}

	req := domain.NewDemoRequest(sub.Name, sub.Email, sub.Purpose, sub.IP, now)
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store demo request: %w", err)
	}

	s.dispatchFollowUps(ctx, req)
	return req, nil
}

func (s *demoRequestService) dispatchFollowUps(ctx context.Context, req *domain.DemoRequest) {
	mail := &domain.DemoRequestEmailData{
		To:      s.cfg.NotifyTo,
		Name:    req.Name,
		Email:   req.Email,
		Purpose: req.Purpose,
		IP:      req.IP,
	}
	s.tasks.Go(ctx, "demo_request_email", func(ctx context.Context) error {
		return s.emailService.SendDemoRequestNotification(ctx, mail)
	})

	row := []string{req.Name, req.Email, req.IP, req.CreatedAt.UTC().Format(time.RFC3339)}
	s.tasks.Go(ctx, "demo_request_sheet_sync", func(ctx context.Context) error {
		return s.sink.AppendRow(ctx, row)
	})
}

// List returns one page of requests, newest first. An unknown status is ignored and
// an empty result still reports one page.
func (s *demoRequestService) List(ctx context.Context, q domain.DemoRequestQuery) (*domain.DemoRequestPage, error) {
	page := domain.PaginationParams{Page: q.Page, PageSize: q.PageSize}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = AdminPageSize
	}
	filter := domain.DemoRequestFilter{Search: strings.TrimSpace(q.Search)}
	if st, ok := domain.ParseDemoRequestStatus(q.Status); ok {
		filter.Status = st
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count demo requests: %w", err)
	}
	items, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list demo requests: %w", err)
	}
	if items == nil {
		items = []*domain.DemoRequest{}
	}
	return &domain.DemoRequestPage{Items: items, Pages: domain.TotalPages(total, page.PageSize)}, nil
}

func (s *demoRequestService) Update(ctx context.Context, id string, upd domain.DemoRequestUpdate) (*domain.DemoRequest, error) {
	if upd.Status == nil && upd.Notes == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if upd.Status != nil {
		st, ok := domain.ParseDemoRequestStatus(string(*upd.Status))
		if !ok {
			return nil, fmt.Errorf("%w: status must be one of new, contacted, responded", domain.ErrInvalidInput)
		}
		upd.Status = &st
	}
	if upd.Notes != nil && len([]rune(*upd.Notes)) > domain.MaxNotesLen {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", domain.ErrInvalidInput, domain.MaxNotesLen)
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	req, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *demoRequestService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// BulkDelete removes every listed request. Ids that are malformed or already gone
// are skipped silently.
func (s *demoRequestService) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: No ids provided", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(ids))
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup || !validID(id) {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}
	if len(valid) == 0 {
		return nil
	}
	if _, err := s.repo.DeleteMany(ctx, valid); err != nil {
		return fmt.Errorf("failed to delete demo requests: %w", err)
	}
	return nil
}

func (s *demoRequestService) Export(ctx context.Context) ([]*domain.DemoRequest, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load demo requests: %w", err)
	}
	return items, nil
}

func (s *demoRequestService) Stats(ctx context.Context) ([]*domain.DailyCount, error) {
	counts, err := s.repo.CountByDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate demo requests: %w", err)
	}
	if counts == nil {
		counts = []*domain.DailyCount{}
	}
	return counts, nil
}

// validID reports whether id can name a stored document. Stored ids are UUIDs.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
