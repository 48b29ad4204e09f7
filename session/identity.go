package session

import (
	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
)

// AdminIdentity builds an admin identity from token claims alone.
func AdminIdentity(claims *models.TokenClaims) *models.Identity {
	return &models.Identity{
		Kind:     models.IdentityAdmin,
		ID:       claims.ParentID(),
		Email:    claims.Email,
		FullName: claims.FullName,
		Phone:    claims.Phone,
		Role:     enums.RoleAdmin,
	}
}

// MergeIdentity builds a parent identity field by field: the backend value when
// present and non-empty, else the token claim, else the zero value. parent may be
// nil when the profile fetch failed.
func MergeIdentity(parent *models.Parent, claims *models.TokenClaims) *models.Identity {
	if parent == nil {
		parent = &models.Parent{}
	}

	identity := &models.Identity{
		Kind:      models.IdentityParent,
		ID:        pick(parent.ID, claims.ParentID()),
		Email:     pick(parent.Email, claims.Email),
		FullName:  pick(parent.FullName, claims.FullName),
		Phone:     pick(parent.Phone, claims.Phone),
		Address:   pick(parent.Address, claims.Address),
		Role:      enums.Role(pick(string(parent.Role), string(claims.Role))),
		IsCoach:   parent.IsCoach || claims.IsCoach,
		AAUNumber: parent.AAUNumber,
	}
	if identity.Role == "" {
		identity.Role = enums.RoleUser
	}
	if len(parent.Players) > 0 {
		identity.Players = append([]string(nil), parent.Players...)
	}
	return identity
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func cloneIdentity(identity *models.Identity) *models.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	if identity.Players != nil {
		c.Players = append([]string(nil), identity.Players...)
	}
	return &c
}
