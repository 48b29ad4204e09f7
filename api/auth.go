package api

import (
	"context"
	"net/http"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	body, err := c.do(ctx, call{
		operation: "Login",
		method:    http.MethodPost,
		path:      enums.LoginResource,
		body:      credentials{Email: email, Password: password},
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegistrationRequest) (*models.LoginResponse, error) {
	body, err := c.do(ctx, call{
		operation: "Register",
		method:    http.MethodPost,
		path:      enums.RegistrationResource,
		body:      req,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
