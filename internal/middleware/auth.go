package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/access"
	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

// Principal is the authenticated caller
type Principal struct {
	UserID uuid.UUID
	Role   domain.Role
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Claims carried by access tokens
type Claims struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens and stores the Principal in the request context
type Authenticator struct {
	secret []byte
	logger *zap.Logger
}

func NewAuthenticator(secret string, logger *zap.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), logger: logger}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		principal, err := a.parse(token)
		if err != nil {
			a.logger.Debug("rejected token", zap.Error(err))
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

func (a *Authenticator) parse(raw string) (Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return Principal{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Principal{}, fmt.Errorf("user_id claim: %w", err)
	}
	if !claims.Role.Valid() {
		return Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return Principal{UserID: userID, Role: claims.Role}, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization header")
	}

	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return fields[1], nil
}

// RequireAccess lets the request through only when the caller's role may use resource with the request method
func RequireAccess(resource access.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				response.Unauthorized(w, "authentication required")
				return
			}
			if !access.Allowed(principal.Role, r.Method, resource) {
				response.Forbidden(w, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
