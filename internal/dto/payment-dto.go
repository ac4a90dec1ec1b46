package dto

import "github.com/SundayYogurt/league_service/internal/domain"

type CreateIntentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

type PaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
}

type VerifyCardRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

type AttachTransactionRequest struct {
	PaymentID string `json:"paymentId"`
}

type CashApprovalRequest struct {
	UserID string `json:"userId"`
	Paid   bool   `json:"paid"`
}

type BatchCashApprovalRequest struct {
	UserIDs []string `json:"userIds"`
	Paid    bool     `json:"paid"`
}

type CashPaymentResponse struct {
	CashPayment *domain.CashPaymentRequest `json:"cashPayment"`
}

type CashPaymentListResponse struct {
	CashPayments []domain.CashPaymentRequest `json:"cashPayments"`
}
