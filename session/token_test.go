package session

import (
	"testing"
	"time"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToken(t *testing.T) {
	token := signToken(t, &models.TokenClaims{
		MongoID: "64f0c",
		Email:   "pat@example.com",
		Role:    enums.RoleUser,
		IsCoach: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ignored",
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	})

	claims, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c", claims.ParentID())
	assert.Equal(t, "pat@example.com", claims.Email)
	assert.True(t, claims.IsCoach)
	assert.True(t, claims.ExpiresAt.Time.Equal(testNow.Add(time.Hour)))
}

func TestDecodeTokenErrors(t *testing.T) {
	_, err := DecodeToken("")
	assert.ErrorIs(t, err, ErrNoToken)

	for _, token := range []string{"abc", "a.b", "a.b.c", "e30.!!!.sig"} {
		_, err := DecodeToken(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, token)
	}
}

func TestParentIDResolution(t *testing.T) {
	claims := &models.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-1"}}
	assert.Equal(t, "sub-1", claims.ParentID())
	claims.MongoID = "mongo-1"
	assert.Equal(t, "mongo-1", claims.ParentID())
	claims.UserID = "id-1"
	assert.Equal(t, "id-1", claims.ParentID())
}

func TestValidateToken(t *testing.T) {
	valid := signToken(t, parentClaims("p-1", testNow.Add(time.Second)))
	_, err := ValidateToken(valid, testNow)
	assert.NoError(t, err)

	_, err = ValidateToken(valid, testNow.Add(time.Second))
	assert.ErrorIs(t, err, ErrTokenExpired)

	noExp := parentClaims("p-1", testNow)
	noExp.ExpiresAt = nil
	_, err = ValidateToken(signToken(t, noExp), testNow)
	assert.ErrorIs(t, err, ErrTokenMissingExpiry)
}

func TestMergeIdentity(t *testing.T) {
	claims := parentClaims("p-1", testNow)
	claims.Address = "claims address"

	testCases := []struct {
		name   string
		parent *models.Parent
		check  func(t *testing.T, id *models.Identity)
	}{
		{
			name:   "nil parent uses claims",
			parent: nil,
			check: func(t *testing.T, id *models.Identity) {
				assert.Equal(t, "p-1", id.ID)
				assert.Equal(t, "Pat Token", id.FullName)
				assert.Equal(t, "claims address", id.Address)
				assert.Equal(t, enums.RoleUser, id.Role)
			},
		},
		{
			name:   "backend wins when non-empty",
			parent: &models.Parent{ID: "p-1", FullName: "Pat Backend", Phone: "", Role: enums.RoleCoach, IsCoach: true},
			check: func(t *testing.T, id *models.Identity) {
				assert.Equal(t, "Pat Backend", id.FullName)
				assert.Equal(t, "425-555-0100", id.Phone)
				assert.Equal(t, enums.RoleCoach, id.Role)
				assert.True(t, id.IsCoach)
			},
		},
		{
			name:   "missing backend id falls back to token id",
			parent: &models.Parent{FullName: "Pat Backend"},
			check: func(t *testing.T, id *models.Identity) {
				assert.Equal(t, "p-1", id.ID)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := MergeIdentity(tc.parent, claims)
			assert.Equal(t, models.IdentityParent, id.Kind)
			tc.check(t, id)
		})
	}

	empty := MergeIdentity(nil, &models.TokenClaims{})
	assert.Empty(t, empty.Email)
	assert.Empty(t, empty.ID)
}
