package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurobiomark/internal/delivery/http/middleware"
	"neurobiomark/internal/domain"
)

// fakeAdminAuthService implements domain.AdminAuthService for handler tests.
type fakeAdminAuthService struct {
	token string
	err   error
}

func (f *fakeAdminAuthService) Login(_ context.Context, email, password string) (string, error) {
	return f.token, f.err
}

func (f *fakeAdminAuthService) SessionTTL() time.Duration { return time.Hour }

func TestAdminController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAdminAuthService
		wantStatus int
		wantCookie bool
		wantMsg    string
	}{
		{name: "success", body: `{"email":"admin@example.com","password":"pw"}`, svc: &fakeAdminAuthService{token: "jwt"}, wantStatus: http.StatusOK, wantCookie: true},
		{name: "bad credentials", body: `{"email":"admin@example.com","password":"x"}`, svc: &fakeAdminAuthService{err: fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)}, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid credentials"},
		{name: "missing password", body: `{"email":"admin@example.com"}`, svc: &fakeAdminAuthService{}, wantStatus: http.StatusBadRequest, wantMsg: "password is required"},
		{name: "signer failure", body: `{"email":"a@b.co","password":"pw"}`, svc: &fakeAdminAuthService{err: errors.New("failed to sign token")}, wantStatus: http.StatusInternalServerError, wantMsg: "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAdminController(testLogger, tt.svc, true)
			rr := httptest.NewRecorder()
			ctrl.Login(rr, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			cookies := rr.Result().Cookies()
			if !tt.wantCookie {
				assert.Empty(t, cookies)
				assert.Equal(t, tt.wantMsg, decodeError(t, rr.Body).Error)
				return
			}
			require.Len(t, cookies, 1)
			assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
			assert.Equal(t, "jwt", cookies[0].Value)
			assert.Equal(t, 3600, cookies[0].MaxAge)
			assert.True(t, cookies[0].HttpOnly)
			assert.True(t, cookies[0].Secure)
			assert.JSONEq(t, `{"success":true}`, rr.Body.String())
		})
	}
}

func TestAdminController_Logout(t *testing.T) {
	ctrl := NewAdminController(testLogger, &fakeAdminAuthService{}, false)
	rr := httptest.NewRecorder()
	ctrl.Logout(rr, httptest.NewRequest(http.MethodPost, "/admin/logout", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
