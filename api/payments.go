package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	"github.com/go-playground/validator/v10"
)

// ProcessPayment charges a card token obtained from the payment processor's
// client SDK.
func (c *Client) ProcessPayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResult, error) {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(req); err != nil {
		return nil, fmt.Errorf("invalid payment: %w", err)
	}
	var result models.PaymentResult
	if err := c.send(ctx, "ProcessPayment", http.MethodPost, enums.PaymentProcessResource, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
