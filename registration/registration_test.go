package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	got *models.RegistrationRequest
	err error
}

func (f *fakeBackend) Register(_ context.Context, req *models.RegistrationRequest) (*models.LoginResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{Token: "jwt"}, nil
}

func validInput() Input {
	return Input{
		Email:        "pat@example.com",
		Password:     "secret1",
		FullName:     "Pat Doe",
		Phone:        "425-555-0100",
		Address:      "123 Main St, Apt 4B, Bothell, washington 98011",
		AgreeToTerms: true,
		Players: []models.PlayerRegistration{
			{FullName: "Kid Doe", Gender: enums.GenderMale, DOB: "2014-05-01"},
		},
	}
}

func TestSubmitNormalizesAddress(t *testing.T) {
	backend := &fakeBackend{}

	resp, err := Submit(context.Background(), backend, validInput())
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	require.NotNil(t, backend.got)
	assert.Equal(t, "123 Main St, Apt 4B, Bothell, WA 98011", backend.got.Address)
	assert.Len(t, backend.got.Players, 1)
}

func TestSubmitRejectsInvalidAddress(t *testing.T) {
	backend := &fakeBackend{}
	in := validInput()
	in.Address = "somewhere over the rainbow"

	_, err := Submit(context.Background(), backend, in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "required", vErr.Fields["address.city"])
	assert.Equal(t, "required", vErr.Fields["address.zip"])
	assert.NotContains(t, vErr.Fields, "address.street")
	assert.Nil(t, backend.got)
}

func TestPrepareFieldErrors(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	in.Password = "123"
	in.AgreeToTerms = false
	in.Players[0].DOB = "05/01/2014"
	in.Guardians = []models.Guardian{{FullName: "Sam Doe", Address: "nowhere"}}

	_, err := Prepare(in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Fields["email"])
	assert.Equal(t, "min", vErr.Fields["password"])
	assert.Equal(t, "eq", vErr.Fields["agreeToTerms"])
	assert.Equal(t, "datetime", vErr.Fields["players[0].dob"])
	assert.Equal(t, "required", vErr.Fields["additionalGuardians[0].address.zip"])
	assert.Contains(t, err.Error(), "registration: invalid fields: ")
}

func TestPrepareGuardianAddress(t *testing.T) {
	in := validInput()
	in.Guardians = []models.Guardian{
		{FullName: "Sam Doe", Address: "9 Elm Rd, Kenmore, wa, 98028"},
		{FullName: "Lee Doe"},
	}

	req, err := Prepare(in)
	require.NoError(t, err)
	assert.Equal(t, "9 Elm Rd, Kenmore, WA 98028", req.AdditionalGuardians[0].Address)
	assert.Empty(t, req.AdditionalGuardians[1].Address)
	assert.Equal(t, "9 Elm Rd, Kenmore, wa, 98028", in.Guardians[0].Address)
}

func TestSubmitBackendError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("email taken")}
	_, err := Submit(context.Background(), backend, validInput())
	assert.ErrorContains(t, err, "email taken")
}
