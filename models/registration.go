package models

// RegistrationRequest creates a parent account with its guardians and players.
// Address is the normalized single-line form.
type RegistrationRequest struct {
	Email               string               `json:"email" validate:"required,email"`
	Password            string               `json:"password" validate:"required,min=6"`
	FullName            string               `json:"fullName" validate:"required"`
	Phone               string               `json:"phone" validate:"required"`
	Address             string               `json:"address"`
	Relationship        string               `json:"relationship,omitempty"`
	IsCoach             bool                 `json:"isCoach"`
	AAUNumber           string               `json:"aauNumber,omitempty"`
	AdditionalGuardians []Guardian           `json:"additionalGuardians,omitempty" validate:"dive"`
	Players             []PlayerRegistration `json:"players,omitempty" validate:"dive"`
	Agreement           bool                 `json:"agreeToTerms" validate:"eq=true"`
}
