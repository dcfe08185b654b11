package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequire(t *testing.T) {
	svc := NewService("secret", time.Hour)
	staffToken, err := svc.Issue(testUser)
	require.NoError(t, err)

	expiredSvc := NewService("secret", time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expiredSvc.Issue(testUser)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(claims.UserID))
	})

	tests := []struct {
		name     string
		header   string
		roles    []domain.Role
		wantCode int
		wantBody string
	}{
		{name: "no token", wantCode: http.StatusUnauthorized, wantBody: MsgNoToken},
		{name: "expired", header: "Bearer " + expiredToken, wantCode: http.StatusUnauthorized, wantBody: MsgTokenExpired},
		{name: "invalid", header: "Bearer nonsense", wantCode: http.StatusUnauthorized, wantBody: MsgTokenInvalid},
		{name: "wrong role", header: "Bearer " + staffToken, roles: []domain.Role{domain.RoleAdmin}, wantCode: http.StatusForbidden, wantBody: MsgForbidden},
		{name: "allowed role", header: "Bearer " + staffToken, roles: []domain.Role{domain.RoleAdmin, domain.RoleStaff}, wantCode: http.StatusOK, wantBody: "u1"},
		{name: "any authenticated caller", header: "Bearer " + staffToken, wantCode: http.StatusOK, wantBody: "u1"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			recorder := httptest.NewRecorder()

			Require(svc, testCase.roles...)(next).ServeHTTP(recorder, req)

			assert.Equal(t, testCase.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), testCase.wantBody)
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	assert.Equal(t, "abc.def", BearerToken(req))
}
