package models

import (
	"fmt"

	"github.com/bothellselect/select-client/enums"
	"github.com/go-playground/validator/v10"
)

type FormField struct {
	Name     string          `json:"name" validate:"required"`
	Label    string          `json:"label" validate:"required"`
	Type     enums.FieldType `json:"type" validate:"required,oneof=text email phone number date select checkbox textarea payment"`
	Required bool            `json:"required"`
	Options  []string        `json:"options,omitempty"`
}

type FormPayment struct {
	Amount      int64  `json:"amount" validate:"gt=0"`
	Description string `json:"description,omitempty"`
}

type FormTemplate struct {
	ID          string       `json:"_id,omitempty"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description,omitempty"`
	Fields      []FormField  `json:"fields" validate:"required,min=1,dive"`
	Payment     *FormPayment `json:"payment,omitempty" validate:"omitempty"`
	IsActive    bool         `json:"isActive"`
}

// Validate checks field definitions before the template is sent to the backend.
func (f *FormTemplate) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(f); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("duplicate field name %q", field.Name)
		}
		seen[field.Name] = struct{}{}

		if field.Type.NeedsOptions() && len(field.Options) == 0 {
			return fmt.Errorf("field %q of type %s needs at least one option", field.Name, field.Type)
		}
		if field.Type == enums.FieldTypePayment && f.Payment == nil {
			return fmt.Errorf("field %q collects payment but the form has no payment amount", field.Name)
		}
	}
	return nil
}
