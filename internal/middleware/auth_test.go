package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/access"
	"github.com/segyhp/edu-backoffice/internal/domain"
)

const testSecret = "test-secret"

func newToken(secret string, userID uuid.UUID, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func protected(resource access.Resource) http.Handler {
	auth := NewAuthenticator(testSecret, zap.NewNop())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())
		w.Header().Set("X-User", p.UserID.String())
		w.WriteHeader(http.StatusOK)
	})
	return auth.Authenticate(RequireAccess(resource)(ok))
}

func signed(t *testing.T, role domain.Role, ttl time.Duration) string {
	t.Helper()
	token, err := newToken(testSecret, uuid.New(), role, ttl)
	require.NoError(t, err)
	return token
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.NewString(), Role: domain.RoleAdministrator}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	foreign, err := newToken("other-secret", uuid.New(), domain.RoleAdministrator, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		method   string
		resource access.Resource
		want     int
	}{
		{name: "no header", method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusUnauthorized},
		{name: "unsigned token", header: "Bearer " + noneToken, method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signed(t, domain.RoleAdministrator, -time.Minute), method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusUnauthorized},
		{name: "student reads schedule", header: "Bearer " + signed(t, domain.RoleStudent, time.Hour), method: http.MethodGet, resource: access.ResourceSchedule, want: http.StatusOK},
		{name: "student books schedule", header: "Bearer " + signed(t, domain.RoleStudent, time.Hour), method: http.MethodPost, resource: access.ResourceSchedule, want: http.StatusForbidden},
		{name: "teacher reads invoices", header: "Bearer " + signed(t, domain.RoleTeacher, time.Hour), method: http.MethodGet, resource: access.ResourceInvoices, want: http.StatusForbidden},
		{name: "manager pays", header: "bearer " + signed(t, domain.RoleManager, time.Hour), method: http.MethodPost, resource: access.ResourcePayments, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/anything", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(tt.resource).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthenticate_StoresPrincipal(t *testing.T) {
	userID := uuid.New()
	token, err := newToken(testSecret, userID, domain.RoleManager, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protected(access.ResourceInvoices).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Header().Get("X-User"))
}

func TestRequireAccess_WithoutPrincipal(t *testing.T) {
	handler := RequireAccess(access.ResourceSchedule)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
