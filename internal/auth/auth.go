package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifiers from the roles reference table.
const (
	RoleAdmin   int64 = 1
	RoleRegular int64 = 2
)

// Claims is the typed identity carried by a bearer token and through the
// request context. Subject holds the user's email.
type Claims struct {
	RoleID int64 `json:"role_id"`
	jwt.RegisteredClaims
}

// Identity is the resolved user behind a validated token.
type Identity struct {
	UserID    int64
	Email     string
	FirstName string
	RoleID    int64
}

// TokenGenerator mints and validates bearer tokens.
type TokenGenerator interface {
	GenerateToken(email string, roleID int64) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	ResolveIdentity(claims *Claims) (*Identity, error)
}

type LoginResult struct {
	UserID    int64
	FirstName string
	Email     string
	RoleID    int64
	Token     string
}

type ctxKey string

const contextIdentityKey ctxKey = "identity"

// IdentityFromContext returns the authenticated identity set by the auth
// middleware, or nil when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(contextIdentityKey).(*Identity); ok {
		return id
	}
	return nil
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextIdentityKey, id)
}
