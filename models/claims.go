package models

import (
	"github.com/bothellselect/select-client/enums"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the profile fields the backend embeds in the bearer token.
type TokenClaims struct {
	UserID   string     `json:"id,omitempty"`
	MongoID  string     `json:"_id,omitempty"`
	Email    string     `json:"email,omitempty"`
	FullName string     `json:"fullName,omitempty"`
	Role     enums.Role `json:"role,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	Address  string     `json:"address,omitempty"`
	IsCoach  bool       `json:"isCoach,omitempty"`
	jwt.RegisteredClaims
}

// ParentID resolves the account id from id, then _id, then sub.
func (c *TokenClaims) ParentID() string {
	switch {
	case c.UserID != "":
		return c.UserID
	case c.MongoID != "":
		return c.MongoID
	default:
		return c.Subject
	}
}
