package models

import "github.com/bothellselect/select-client/enums"

type IdentityKind string

const (
	IdentityAdmin  IdentityKind = "admin"
	IdentityParent IdentityKind = "parent"
)

// Identity is who the current session acts as. Admin identities are synthesized
// from token claims; parent identities come from the backend merged with claims.
type Identity struct {
	Kind      IdentityKind `json:"kind"`
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	FullName  string       `json:"fullName"`
	Phone     string       `json:"phone,omitempty"`
	Address   string       `json:"address,omitempty"`
	Role      enums.Role   `json:"role"`
	IsCoach   bool         `json:"isCoach"`
	AAUNumber string       `json:"aauNumber,omitempty"`
	Players   []string     `json:"players,omitempty"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Kind == IdentityAdmin
}
