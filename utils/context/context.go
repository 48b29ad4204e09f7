// Package context carries request-scoped session values through context.Context.
package context

import (
	"context"

	"github.com/bothellselect/select-client/models"
)

type ctxKey int

const (
	tokenKey ctxKey = iota
	claimsKey
	identityKey
)

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// GetTokenFromContext returns the bearer token, or "" when none was set.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func WithClaims(ctx context.Context, claims *models.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaimsFromContext(ctx context.Context) (*models.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.TokenClaims)
	return claims, ok && claims != nil
}

func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*models.Identity)
	return identity, ok && identity != nil
}
