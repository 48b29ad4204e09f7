package models

import "github.com/bothellselect/select-client/enums"

type Parent struct {
	ID                  string     `json:"_id"`
	FullName            string     `json:"fullName"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	Address             string     `json:"address,omitempty"`
	Role                enums.Role `json:"role,omitempty"`
	IsCoach             bool       `json:"isCoach,omitempty"`
	AAUNumber           string     `json:"aauNumber,omitempty"`
	Players             []string   `json:"players,omitempty"`
	AdditionalGuardians []Guardian `json:"additionalGuardians,omitempty"`
}

type Guardian struct {
	ID           string `json:"_id,omitempty"`
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	AAUNumber    string `json:"aauNumber,omitempty"`
}

// LoginResponse is the body returned by a successful credential exchange.
type LoginResponse struct {
	Token  string  `json:"token"`
	Parent *Parent `json:"parent,omitempty"`
}
