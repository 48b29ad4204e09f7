package context

import (
	"context"
	"testing"

	"github.com/bothellselect/select-client/models"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTokenFromContext(ctx))
	assert.Equal(t, "abc", GetTokenFromContext(WithToken(ctx, "abc")))
}

func TestClaimsAndIdentity(t *testing.T) {
	ctx := context.Background()

	_, ok := GetClaimsFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetClaimsFromContext(WithClaims(ctx, nil))
	assert.False(t, ok)

	claims := &models.TokenClaims{Email: "a@b.c"}
	got, ok := GetClaimsFromContext(WithClaims(ctx, claims))
	assert.True(t, ok)
	assert.Same(t, claims, got)

	identity := &models.Identity{ID: "p1"}
	gotIdentity, ok := GetIdentityFromContext(WithIdentity(ctx, identity))
	assert.True(t, ok)
	assert.Equal(t, "p1", gotIdentity.ID)
}
