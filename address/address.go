// Package address parses the single free-text address typed during registration
// into structured fields, and formats it back for submission.
package address

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type PostalAddress struct {
	Street  string `json:"street" validate:"required"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate returns validator.ValidationErrors naming every missing required field.
func (a PostalAddress) Validate() error {
	return validate.Struct(a)
}

func (a PostalAddress) Valid() bool {
	return a.Validate() == nil
}

// MissingFields lists the json names of required fields that are empty.
func (a PostalAddress) MissingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// String formats the address as "street[, street2], city, state zip".
func (a PostalAddress) String() string {
	var b strings.Builder
	b.WriteString(a.Street)
	if a.Street2 != "" {
		b.WriteString(", ")
		b.WriteString(a.Street2)
	}
	b.WriteString(", ")
	b.WriteString(a.City)
	b.WriteString(", ")
	b.WriteString(a.State)
	b.WriteString(" ")
	b.WriteString(a.Zip)
	return b.String()
}

// Normalizer tries its strategies in order; the terminal strategy always
// produces a result.
type Normalizer struct {
	strategies []Strategy
	terminal   Strategy
}

func NewNormalizer(strategies ...Strategy) *Normalizer {
	if len(strategies) == 0 {
		strategies = []Strategy{withUnit{}, simple{}}
	}
	return &Normalizer{
		strategies: strategies,
		terminal:   degraded{},
	}
}

// Parse never fails. Input no strategy recognises comes back whole in Street,
// and callers are expected to Validate before submitting.
func (n *Normalizer) Parse(input string) PostalAddress {
	addr, _ := n.ParseWith(input)
	return addr
}

// ParseWith is Parse that also reports which strategy produced the result.
func (n *Normalizer) ParseWith(input string) (PostalAddress, string) {
	for _, s := range n.strategies {
		if addr, ok := s.Parse(input); ok {
			return addr, s.Name()
		}
	}
	addr, _ := n.terminal.Parse(input)
	return addr, n.terminal.Name()
}

var defaultNormalizer = NewNormalizer()

// Parse runs the default strategy chain.
func Parse(input string) PostalAddress {
	return defaultNormalizer.Parse(input)
}
