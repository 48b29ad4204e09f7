package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
)

func formPath(id string) string {
	return enums.FormResource + "/" + url.PathEscape(id)
}

func (c *Client) GetForms(ctx context.Context) ([]models.FormTemplate, error) {
	var forms []models.FormTemplate
	if err := c.getList(ctx, "GetForms", enums.FormResource, nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (c *Client) GetForm(ctx context.Context, id string) (*models.FormTemplate, error) {
	var form models.FormTemplate
	if err := c.get(ctx, "GetForm", formPath(id), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateForm validates the template locally before posting it.
func (c *Client) CreateForm(ctx context.Context, form *models.FormTemplate) (*models.FormTemplate, error) {
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}
	var created models.FormTemplate
	if err := c.send(ctx, "CreateForm", http.MethodPost, enums.FormResource, form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateForm(ctx context.Context, form *models.FormTemplate) (*models.FormTemplate, error) {
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}
	var updated models.FormTemplate
	if err := c.send(ctx, "UpdateForm", http.MethodPut, formPath(form.ID), form, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteForm(ctx context.Context, id string) error {
	return c.send(ctx, "DeleteForm", http.MethodDelete, formPath(id), nil, nil)
}
