// Package registration turns the sign-up form into a backend registration request.
package registration

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bothellselect/select-client/address"
	"github.com/bothellselect/select-client/models"
	"github.com/bothellselect/select-client/utils/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Backend interface {
	Register(ctx context.Context, req *models.RegistrationRequest) (*models.LoginResponse, error)
}

// Input is the sign-up form as typed. Addresses are free text.
type Input struct {
	Email        string                      `json:"email"`
	Password     string                      `json:"password"`
	FullName     string                      `json:"fullName"`
	Phone        string                      `json:"phone"`
	Address      string                      `json:"address"`
	Relationship string                      `json:"relationship,omitempty"`
	IsCoach      bool                        `json:"isCoach"`
	AAUNumber    string                      `json:"aauNumber,omitempty"`
	Guardians    []models.Guardian           `json:"additionalGuardians,omitempty"`
	Players      []models.PlayerRegistration `json:"players,omitempty"`
	AgreeToTerms bool                        `json:"agreeToTerms"`
}

// ValidationError maps json field paths (e.g. "address.zip",
// "players[0].dob") to the rule they failed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "registration: invalid fields: " + strings.Join(names, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Prepare validates in and normalizes every address exactly once. Nothing is
// returned unless the whole request is valid.
func Prepare(in Input) (*models.RegistrationRequest, error) {
	req := &models.RegistrationRequest{
		Email:               strings.TrimSpace(in.Email),
		Password:            in.Password,
		FullName:            strings.TrimSpace(in.FullName),
		Phone:               strings.TrimSpace(in.Phone),
		Relationship:        in.Relationship,
		IsCoach:             in.IsCoach,
		AAUNumber:           in.AAUNumber,
		AdditionalGuardians: append([]models.Guardian(nil), in.Guardians...),
		Players:             in.Players,
		Agreement:           in.AgreeToTerms,
	}

	invalid := map[string]string{}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		for _, fe := range fieldErrs {
			invalid[trimRoot(fe.Namespace())] = fe.Tag()
		}
	}

	parsed := address.Parse(in.Address)
	for _, field := range parsed.MissingFields() {
		invalid["address."+field] = "required"
	}
	req.Address = parsed.String()

	for i, g := range req.AdditionalGuardians {
		if strings.TrimSpace(g.Address) == "" {
			continue
		}
		guardianAddr := address.Parse(g.Address)
		for _, field := range guardianAddr.MissingFields() {
			invalid[fmt.Sprintf("additionalGuardians[%d].address.%s", i, field)] = "required"
		}
		req.AdditionalGuardians[i].Address = guardianAddr.String()
	}

	if len(invalid) > 0 {
		return nil, &ValidationError{Fields: invalid}
	}
	return req, nil
}

// Submit prepares and posts the registration.
func Submit(ctx context.Context, backend Backend, in Input) (*models.LoginResponse, error) {
	req, err := Prepare(in)
	if err != nil {
		return nil, err
	}

	resp, err := backend.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	logger.AuthEvent("registered", zap.String("email", req.Email), zap.Int("players", len(req.Players)))
	return resp, nil
}

func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
