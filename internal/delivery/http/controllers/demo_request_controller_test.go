package controllers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurobiomark/internal/delivery/http/helpers"
	"neurobiomark/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeDemoRequestService implements domain.DemoRequestService for handler tests.
type fakeDemoRequestService struct {
	submitErr     error
	lastSubmit    domain.DemoRequestSubmission
	listResult    *domain.DemoRequestPage
	listErr       error
	lastQuery     domain.DemoRequestQuery
	updateResult  *domain.DemoRequest
	updateErr     error
	lastUpdateID  string
	lastUpdate    domain.DemoRequestUpdate
	deleteErr     error
	lastDeleteID  string
	bulkErr       error
	bulkCalled    bool
	lastBulkIDs   []string
	exportResult  []*domain.DemoRequest
	exportErr     error
	statsResult   []*domain.DailyCount
	statsErr      error
}

func (f *fakeDemoRequestService) Submit(_ context.Context, sub domain.DemoRequestSubmission) (*domain.DemoRequest, error) {
	f.lastSubmit = sub
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &domain.DemoRequest{ID: "req-1"}, nil
}

func (f *fakeDemoRequestService) List(_ context.Context, q domain.DemoRequestQuery) (*domain.DemoRequestPage, error) {
	f.lastQuery = q
	return f.listResult, f.listErr
}

func (f *fakeDemoRequestService) Update(_ context.Context, id string, upd domain.DemoRequestUpdate) (*domain.DemoRequest, error) {
	f.lastUpdateID = id
	f.lastUpdate = upd
	return f.updateResult, f.updateErr
}

func (f *fakeDemoRequestService) Delete(_ context.Context, id string) error {
	f.lastDeleteID = id
	return f.deleteErr
}

func (f *fakeDemoRequestService) BulkDelete(_ context.Context, ids []string) error {
	f.bulkCalled = true
	f.lastBulkIDs = ids
	return f.bulkErr
}

func (f *fakeDemoRequestService) Export(_ context.Context) ([]*domain.DemoRequest, error) {
	return f.exportResult, f.exportErr
}

func (f *fakeDemoRequestService) Stats(_ context.Context) ([]*domain.DailyCount, error) {
	return f.statsResult, f.statsErr
}

func decodeError(t *testing.T, body *bytes.Buffer) helpers.ErrorResponse {
	t.Helper()
	var resp helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestDemoRequestController_Submit(t *testing.T) {
	validBody := `{"name":"Ann Lee","email":"ann@x.org","purpose":"Evaluating the platform for a clinical research pilot study.","captchaToken":"tok"}`
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "created", body: validBody, wantStatus: http.StatusCreated},
		{name: "malformed json", body: `{"name":`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unknown field", body: `{"name":"Ann","role":"admin"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{
			name: "invalid input", body: validBody,
			svcErr:     fmt.Errorf("%w: purpose must be between 30 and 1000 characters", domain.ErrInvalidInput),
			wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest,
			wantMsg: "purpose must be between 30 and 1000 characters",
		},
		{name: "captcha failed", body: validBody, svcErr: domain.ErrCaptchaFailed, wantStatus: http.StatusForbidden, wantCode: helpers.ErrCodeCaptchaFailed, wantMsg: "Captcha failed"},
		{name: "duplicate", body: validBody, svcErr: domain.ErrRateLimited, wantStatus: http.StatusTooManyRequests, wantCode: helpers.ErrCodeRateLimited, wantMsg: "Already requested recently"},
		{name: "store down", body: validBody, svcErr: errors.New("failed to store demo request: conn refused"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError, wantMsg: "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDemoRequestService{submitErr: tt.svcErr}
			ctrl := NewDemoRequestController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/demo-requests", strings.NewReader(tt.body))
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			rr := httptest.NewRecorder()

			ctrl.Submit(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.JSONEq(t, `{"success":true}`, rr.Body.String())
				assert.Equal(t, "203.0.113.7", svc.lastSubmit.IP)
				assert.Equal(t, "tok", svc.lastSubmit.CaptchaToken)
				assert.Equal(t, "ann@x.org", svc.lastSubmit.Email)
				return
			}
			resp := decodeError(t, rr.Body)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestDemoRequestController_List(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeDemoRequestService{listResult: &domain.DemoRequestPage{
		Items: []*domain.DemoRequest{{ID: "a", Name: "Ann", Email: "ann@x.org", Status: domain.StatusNew, CreatedAt: created}},
		Pages: 2,
	}}
	ctrl := NewDemoRequestController(testLogger, svc)
	rr := httptest.NewRecorder()
	ctrl.List(rr, httptest.NewRequest(http.MethodGet, "/demo-requests?page=2&search=ann&status=new", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.DemoRequestQuery{Page: 2, Search: "ann", Status: "new"}, svc.lastQuery)
	var body struct {
		Items []map[string]any `json:"items"`
		Pages int              `json:"pages"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 2, body.Pages)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "a", body.Items[0]["id"])
	assert.Equal(t, "2026-03-01T12:00:00Z", body.Items[0]["createdAt"])

	svc = &fakeDemoRequestService{listErr: errors.New("db down")}
	rr = httptest.NewRecorder()
	NewDemoRequestController(testLogger, svc).List(rr, httptest.NewRequest(http.MethodGet, "/demo-requests?page=x", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 1, svc.lastQuery.Page)
}

func TestDemoRequestController_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantMsg    string
		check      func(t *testing.T, svc *fakeDemoRequestService)
	}{
		{
			name: "status", body: `{"status":"contacted"}`, wantStatus: http.StatusOK,
			check: func(t *testing.T, svc *fakeDemoRequestService) {
				require.NotNil(t, svc.lastUpdate.Status)
				assert.Equal(t, domain.StatusContacted, *svc.lastUpdate.Status)
				assert.Nil(t, svc.lastUpdate.Notes)
				assert.Equal(t, "req-1", svc.lastUpdateID)
			},
		},
		{
			name: "notes", body: `{"notes":"called"}`, wantStatus: http.StatusOK,
			check: func(t *testing.T, svc *fakeDemoRequestService) {
				assert.Nil(t, svc.lastUpdate.Status)
				require.NotNil(t, svc.lastUpdate.Notes)
				assert.Equal(t, "called", *svc.lastUpdate.Notes)
			},
		},
		{name: "empty body", body: `{}`, wantStatus: http.StatusBadRequest, wantMsg: "status or notes is required"},
		{name: "other fields rejected", body: `{"email":"x@y.z"}`, wantStatus: http.StatusBadRequest},
		{name: "missing", body: `{"status":"new"}`, svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantMsg: "Demo request not found"},
		{name: "bad status", body: `{"status":"archived"}`, svcErr: fmt.Errorf("%w: status must be one of new, contacted, responded", domain.ErrInvalidInput), wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDemoRequestService{updateErr: tt.svcErr, updateResult: &domain.DemoRequest{ID: "req-1", Status: domain.StatusContacted}}
			ctrl := NewDemoRequestController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPatch, "/demo-requests/req-1", strings.NewReader(tt.body))
			req.SetPathValue("id", "req-1")
			rr := httptest.NewRecorder()

			ctrl.Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeError(t, rr.Body).Error)
			}
			if tt.check != nil {
				tt.check(t, svc)
			}
		})
	}
}

func TestDemoRequestController_Delete(t *testing.T) {
	svc := &fakeDemoRequestService{}
	ctrl := NewDemoRequestController(testLogger, svc)
	req := httptest.NewRequest(http.MethodDelete, "/demo-requests/req-1", nil)
	req.SetPathValue("id", "req-1")
	rr := httptest.NewRecorder()
	ctrl.Delete(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
	assert.Equal(t, "req-1", svc.lastDeleteID)

	svc.deleteErr = domain.ErrNotFound
	rr = httptest.NewRecorder()
	ctrl.Delete(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDemoRequestController_BulkDelete(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCalled bool
		wantMsg    string
	}{
		{name: "ids", body: `{"ids":["a","b"]}`, wantStatus: http.StatusOK, wantCalled: true},
		{name: "empty ids", body: `{"ids":[]}`, wantStatus: http.StatusBadRequest, wantMsg: "No ids provided"},
		{name: "absent ids", body: `{}`, wantStatus: http.StatusBadRequest, wantMsg: "No ids provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeDemoRequestService{}
			ctrl := NewDemoRequestController(testLogger, svc)
			rr := httptest.NewRecorder()
			ctrl.BulkDelete(rr, httptest.NewRequest(http.MethodPost, "/demo-requests/bulk-delete", strings.NewReader(tt.body)))
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, svc.bulkCalled)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeError(t, rr.Body).Error)
			}
		})
	}
}

func TestDemoRequestController_Export(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	svc := &fakeDemoRequestService{exportResult: []*domain.DemoRequest{
		{Name: "Ann, Lee", Email: "ann@x.org", Status: domain.StatusNew, IP: "1.2.3.4", CreatedAt: created},
		{Name: "=HYPERLINK(\"x\")", Email: "bo@x.org", Status: domain.StatusResponded, IP: "unknown", CreatedAt: created},
	}}
	ctrl := NewDemoRequestController(testLogger, svc)
	rr := httptest.NewRecorder()
	ctrl.Export(rr, httptest.NewRequest(http.MethodGet, "/demo-requests/export", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=demo_requests.csv", rr.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"Ann, Lee", "ann@x.org", "new", "1.2.3.4", "2026-03-01T11:00:00Z"}, records[1])
	assert.Equal(t, `'=HYPERLINK("x")`, records[2][0])

	svc.exportErr = errors.New("db down")
	rr = httptest.NewRecorder()
	ctrl.Export(rr, httptest.NewRequest(http.MethodGet, "/demo-requests/export", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestDemoRequestController_Stats(t *testing.T) {
	svc := &fakeDemoRequestService{statsResult: []*domain.DailyCount{{Day: "2026-03-01", Count: 4}}}
	rr := httptest.NewRecorder()
	NewDemoRequestController(testLogger, svc).Stats(rr, httptest.NewRequest(http.MethodGet, "/demo-requests/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"day":"2026-03-01","count":4}]`, rr.Body.String())
}
