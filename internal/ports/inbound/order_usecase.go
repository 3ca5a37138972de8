package inbound

import (
	"context"

	"orderdesk/internal/core/service"
	"orderdesk/internal/core/verify"
)

// OrderUseCase is what the webhook, dashboard and consumer adapters drive.
// Verification inputs stay loosely typed on purpose: the dialogue engine
// sends whatever JSON type the user's utterance produced.
type OrderUseCase interface {
	VerifyOrderID(ctx context.Context, orderID any) (verify.Result, error)
	VerifyPhone(ctx context.Context, orderID, phone any) (verify.Result, error)
	VerifyDOB(ctx context.Context, orderID, dob any) (verify.Result, error)
	StatusByPhone(ctx context.Context, orderID, phone any) (verify.StatusResult, error)
	StatusByDOB(ctx context.Context, orderID, dob any) (verify.StatusResult, error)
	LookupOrder(ctx context.Context, orderID any) (verify.Result, error)

	VerifyOrderForCancel(ctx context.Context, orderID any) (verify.Result, error)
	VerifyPhoneForCancel(ctx context.Context, orderID, phone any) (verify.Result, error)
	Cancel(ctx context.Context, orderID, phone any, confirmation string) (service.CancelOutcome, error)

	Reactivate(ctx context.Context) (int, error)
	InvalidateOrders()
	WarmOrders(ctx context.Context) (int, error)
}

var _ OrderUseCase = (*service.OrderService)(nil)
