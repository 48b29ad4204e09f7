package models

import "github.com/bothellselect/select-client/enums"

type PaymentRequest struct {
	SourceID  string   `json:"sourceId" validate:"required"`
	Amount    int64    `json:"amount" validate:"gt=0"`
	Currency  string   `json:"currency" validate:"required,len=3"`
	FormID    string   `json:"formId,omitempty"`
	ParentID  string   `json:"parentId" validate:"required"`
	PlayerIDs []string `json:"playerIds,omitempty"`
	Email     string   `json:"email" validate:"required,email"`
}

type PaymentResult struct {
	ID         string              `json:"paymentId"`
	Status     enums.PaymentStatus `json:"status"`
	ReceiptURL string              `json:"receiptUrl,omitempty"`
}
