package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DemoRequestStatus is the follow-up state of a demo request, set by admins.
type DemoRequestStatus string

const (
	StatusNew       DemoRequestStatus = "new"
	StatusContacted DemoRequestStatus = "contacted"
	StatusResponded DemoRequestStatus = "responded"
)

// UnknownIP is stored when the submitter's network origin cannot be determined.
const UnknownIP = "unknown"

// Field limits for demo request submissions.
const (
	MinNameLen    = 2
	MaxNameLen    = 80
	MaxEmailLen   = 120
	MinPurposeLen = 30
	MaxPurposeLen = 1000
	MaxNotesLen   = 5000
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like a deliverable email address.
func ValidEmail(s string) bool {
	return emailRegexp.MatchString(s)
}

// ParseDemoRequestStatus trims and lowercases s and reports whether it names a known status.
func ParseDemoRequestStatus(s string) (DemoRequestStatus, bool) {
	st := DemoRequestStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusNew, StatusContacted, StatusResponded:
		return st, true
	}
	return "", false
}

// DemoRequest is a stored "request a demo" submission.
// swagger:model DemoRequest
type DemoRequest struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Purpose   string            `json:"purpose"`
	IP        string            `json:"ip"`
	Status    DemoRequestStatus `json:"status"`
	Notes     string            `json:"notes"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewDemoRequest returns a fresh request in the "new" state with empty notes.
// ID is set by the repository on create.
func NewDemoRequest(name, email, purpose, ip string, createdAt time.Time) *DemoRequest {
	if strings.TrimSpace(ip) == "" {
		ip = UnknownIP
	}
	return &DemoRequest{
		Name:      name,
		Email:     email,
		Purpose:   purpose,
		IP:        ip,
		Status:    StatusNew,
		Notes:     "",
		CreatedAt: createdAt,
	}
}

// DemoRequestSubmission is the public form input plus the caller's network origin.
type DemoRequestSubmission struct {
	Name         string
	Email        string
	Purpose      string
	CaptchaToken string
	IP           string
}

// Normalize trims all fields and lowercases the email, which is the duplicate-guard key.
func (s DemoRequestSubmission) Normalize() DemoRequestSubmission {
	return DemoRequestSubmission{
		Name:         strings.TrimSpace(s.Name),
		Email:        strings.ToLower(strings.TrimSpace(s.Email)),
		Purpose:      strings.TrimSpace(s.Purpose),
		CaptchaToken: strings.TrimSpace(s.CaptchaToken),
		IP:           strings.TrimSpace(s.IP),
	}
}

// Validate returns error messages for length and format rules. captchaRequired makes
// an empty token an input error.
func (s DemoRequestSubmission) Validate(captchaRequired bool) []string {
	var errs []string
	if n := utf8.RuneCountInString(s.Name); n < MinNameLen || n > MaxNameLen {
		errs = append(errs, fmt.Sprintf("name must be between %d and %d characters", MinNameLen, MaxNameLen))
	}
	switch {
	case s.Email == "":
		errs = append(errs, "email is required")
	case utf8.RuneCountInString(s.Email) > MaxEmailLen:
		errs = append(errs, fmt.Sprintf("email must be at most %d characters", MaxEmailLen))
	case !ValidEmail(s.Email):
		errs = append(errs, "invalid email format")
	}
	if n := utf8.RuneCountInString(s.Purpose); n < MinPurposeLen || n > MaxPurposeLen {
		errs = append(errs, fmt.Sprintf("purpose must be between %d and %d characters", MinPurposeLen, MaxPurposeLen))
	}
	if captchaRequired && s.CaptchaToken == "" {
		errs = append(errs, "captcha missing")
	}
	return errs
}

// DemoRequestFilter narrows admin list queries. Zero values mean "no filter".
type DemoRequestFilter struct {
	Search string
	Status DemoRequestStatus
}

// DemoRequestQuery is the raw admin list query; the service normalizes it.
type DemoRequestQuery struct {
	Page     int
	Search   string
	Status   string
	PageSize int
}

// DemoRequestPage is one page of the admin list.
// swagger:model DemoRequestPage
type DemoRequestPage struct {
	Items []*DemoRequest `json:"items"`
	Pages int            `json:"pages"`
}

// DemoRequestUpdate carries the admin-mutable fields. Nil fields are unchanged.
type DemoRequestUpdate struct {
	Status *DemoRequestStatus
	Notes  *string
}

// DailyCount is the number of requests created on one UTC day (YYYY-MM-DD).
// swagger:model DailyCount
type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// DemoRequestRepository defines storage for demo requests.
type DemoRequestRepository interface {
	Create(ctx context.Context, req *DemoRequest) error
	ExistsSince(ctx context.Context, email string, since time.Time) (bool, error)
	Count(ctx context.Context, filter DemoRequestFilter) (int, error)
	List(ctx context.Context, filter DemoRequestFilter, page PaginationParams) ([]*DemoRequest, error)
	ListAll(ctx context.Context) ([]*DemoRequest, error)
	Update(ctx context.Context, id string, upd DemoRequestUpdate) (*DemoRequest, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	CountByDay(ctx context.Context) ([]*DailyCount, error)
}

// DemoRequestService defines the intake pipeline and the admin operations on demo requests.
type DemoRequestService interface {
	Submit(ctx context.Context, sub DemoRequestSubmission) (*DemoRequest, error)
	List(ctx context.Context, q DemoRequestQuery) (*DemoRequestPage, error)
	Update(ctx context.Context, id string, upd DemoRequestUpdate) (*DemoRequest, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
	Export(ctx context.Context) ([]*DemoRequest, error)
	Stats(ctx context.Context) ([]*DailyCount, error)
}

// CaptchaVerifier checks a human-verification token with an external service.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// RowAppender appends one row to an external spreadsheet-like sink.
type RowAppender interface {
	AppendRow(ctx context.Context, row []string) error
}

// TaskRunner runs detached best-effort work. Failures are reported to the runner's
// observer and never to the caller.
type TaskRunner interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}
