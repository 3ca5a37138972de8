package service

import (
	"context"
	"fmt"
	"sync"

	"orderdesk/internal/core/verify"
	"orderdesk/internal/ports/outbound"
)

// ConfirmationYes is the affirmative sentinel the dialogue engine sends when
// the user confirms cancellation. Anything else aborts without mutation.
const ConfirmationYes = "yes"

// OrderService runs the verification pipeline and the mutation workflows
// over the cached collection. Mutations are serialized by a single-writer
// mutex: the backing store has no compare-and-swap, so overlapping
// read-modify-write sequences inside one process must not interleave.
type OrderService struct {
	source outbound.OrderSource

	mutMu sync.Mutex
}

func NewOrderService(source outbound.OrderSource) *OrderService {
	return &OrderService{source: source}
}

func (s *OrderService) VerifyOrderID(ctx context.Context, orderID any) (verify.Result, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return verify.Result{}, fmt.Errorf("read orders: %w", err)
	}
	return verify.OrderID(orderID, orders), nil
}

func (s *OrderService) VerifyPhone(ctx context.Context, orderID, phone any) (verify.Result, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return verify.Result{}, fmt.Errorf("read orders: %w", err)
	}
	return verify.Phone(orderID, phone, orders), nil
}

func (s *OrderService) VerifyDOB(ctx context.Context, orderID, dob any) (verify.Result, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return verify.Result{}, fmt.Errorf("read orders: %w", err)
	}
	return verify.DOB(orderID, dob, orders), nil
}

func (s *OrderService) StatusByPhone(ctx context.Context, orderID, phone any) (verify.StatusResult, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return verify.StatusResult{}, fmt.Errorf("read orders: %w", err)
	}
	return verify.StatusByPhone(orderID, phone, orders), nil
}

func (s *OrderService) StatusByDOB(ctx context.Context, orderID, dob any) (verify.StatusResult, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return verify.StatusResult{}, fmt.Errorf("read orders: %w", err)
	}
	return verify.StatusByDOB(orderID, dob, orders), nil
}

// LookupOrder is the plain id lookup kept for webhook backward compatibility.
func (s *OrderService) LookupOrder(ctx context.Context, orderID any) (verify.Result, error) {
	return s.VerifyOrderID(ctx, orderID)
}

// InvalidateOrders drops the cached snapshot. Driven by forceRefresh at the
// webhook boundary and by out-of-band change notices.
func (s *OrderService) InvalidateOrders() {
	s.source.Invalidate()
}

// WarmOrders primes the snapshot at startup and reports the record count.
func (s *OrderService) WarmOrders(ctx context.Context) (int, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read orders: %w", err)
	}
	return len(orders), nil
}
