package models

import (
	"github.com/bothellselect/select-client/enums"
)

type Player struct {
	ID               string              `json:"_id"`
	FullName         string              `json:"fullName"`
	Gender           enums.Gender        `json:"gender,omitempty"`
	DOB              string              `json:"dob,omitempty"`
	SchoolName       string              `json:"schoolName,omitempty"`
	Grade            string              `json:"grade,omitempty"`
	HealthInsurance  string              `json:"healthInsurance,omitempty"`
	MedicalNotes     string              `json:"medicalNotes,omitempty"`
	ParentID         string              `json:"parentId,omitempty"`
	RegistrationYear int                 `json:"registrationYear,omitempty"`
	Season           enums.Season        `json:"season,omitempty"`
	PaymentStatus    enums.PaymentStatus `json:"paymentStatus,omitempty"`
}

// PlayerRegistration is a player entry inside a registration submission.
type PlayerRegistration struct {
	FullName        string       `json:"fullName" validate:"required"`
	Gender          enums.Gender `json:"gender" validate:"omitempty,oneof=Male Female"`
	DOB             string       `json:"dob" validate:"required,datetime=2006-01-02"`
	SchoolName      string       `json:"schoolName,omitempty"`
	Grade           string       `json:"grade,omitempty"`
	HealthInsurance string       `json:"healthInsurance,omitempty"`
	MedicalNotes    string       `json:"medicalNotes,omitempty"`
}
