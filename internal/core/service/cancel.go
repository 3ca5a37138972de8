package service

import (
	"context"
	"fmt"

	"orderdesk/internal/core/domain"
	"orderdesk/internal/core/normalize"
	"orderdesk/internal/core/verify"
)

// CancelOutcome reports how a cancellation request ended. Every user-level
// condition is a code; only store I/O failures travel as errors.
type CancelOutcome struct {
	Code  verify.Code
	Order domain.Order
}

// VerifyOrderForCancel checks the id exists and returns the record so the
// dialogue engine can read back the book name and status.
func (s *OrderService) VerifyOrderForCancel(ctx context.Context, orderID any) (verify.Result, error) {
	return s.VerifyOrderID(ctx, orderID)
}

// VerifyPhoneForCancel matches the (orderId, phNum) pair and detects an
// already-cancelled order. Cancellation is idempotent by detection: an order
// in the cancelled state reports ALREADY_CANCELLED here every time and is
// never re-mutated.
func (s *OrderService) VerifyPhoneForCancel(ctx context.Context, orderID, phone any) (verify.Result, error) {
	orders, err := s.source.Read(ctx)
	if err != nil {
		return verify.Result{}, fmt.Errorf("read orders: %w", err)
	}
	return cancelPhoneCheck(orderID, phone, orders), nil
}

func cancelPhoneCheck(orderID, phone any, orders []domain.Order) verify.Result {
	id, okID := normalize.Number(orderID)
	p, okPhone := normalize.Number(phone)
	if !okID || !okPhone {
		return verify.Result{Code: verify.CodeMissingFields}
	}
	i, found := domain.FindByIDAndPhone(orders, id, p)
	if !found {
		return verify.Result{Code: verify.CodePhoneMismatch}
	}
	if orders[i].Cancelled {
		return verify.Result{Code: verify.CodeAlreadyCancelled, Order: orders[i]}
	}
	return verify.Result{OK: true, Code: verify.CodePhoneMatch, Order: orders[i]}
}

// Cancel runs the confirmed cancellation: explicit confirmation gate, phone
// re-verification, then pair lookup and write-through under the mutation
// lock. The lookup is repeated on a fresh read because the collection may
// have changed between verification and mutation; a vanished record is
// CANCEL_NOT_FOUND, distinct from a verification failure.
func (s *OrderService) Cancel(ctx context.Context, orderID, phone any, confirmation string) (CancelOutcome, error) {
	if confirmation != ConfirmationYes {
		return CancelOutcome{Code: verify.CodeCancelDeclined}, nil
	}

	id, okID := normalize.Number(orderID)
	p, okPhone := normalize.Number(phone)
	if !okID || !okPhone {
		return CancelOutcome{Code: verify.CodeMissingFields}, nil
	}

	check, err := s.VerifyPhoneForCancel(ctx, id, p)
	if err != nil {
		return CancelOutcome{}, err
	}
	if !check.OK {
		return CancelOutcome{Code: check.Code, Order: check.Order}, nil
	}

	s.mutMu.Lock()
	defer s.mutMu.Unlock()

	orders, err := s.source.Read(ctx)
	if err != nil {
		return CancelOutcome{}, fmt.Errorf("read orders: %w", err)
	}

	i, found := domain.FindByIDAndPhone(orders, id, p)
	if !found {
		return CancelOutcome{Code: verify.CodeCancelNotFound}, nil
	}
	if orders[i].Cancelled {
		return CancelOutcome{Code: verify.CodeAlreadyCancelled, Order: orders[i]}, nil
	}

	mutated := domain.Clone(orders)
	mutated[i].Cancelled = true
	mutated[i].Status = domain.StatusCancelled

	if err := s.source.WriteThrough(ctx, mutated); err != nil {
		return CancelOutcome{Code: verify.CodeUpdateFailed}, fmt.Errorf("write orders: %w", err)
	}
	return CancelOutcome{Code: verify.CodeCancelDone, Order: mutated[i]}, nil
}

// Reactivate flips every cancelled record back to active. Status is reset
// only when it still reads "cancelled"; any other status value is preserved,
// which also repairs drift between the flag and the status string. Zero
// changes is a success, and nothing is written in that case.
func (s *OrderService) Reactivate(ctx context.Context) (int, error) {
	s.mutMu.Lock()
	defer s.mutMu.Unlock()

	orders, err := s.source.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read orders: %w", err)
	}

	mutated := domain.Clone(orders)
	changed := 0
	for i := range mutated {
		if !mutated[i].Cancelled {
			continue
		}
		mutated[i].Cancelled = false
		if mutated[i].Status == domain.StatusCancelled {
			mutated[i].Status = domain.StatusActive
		}
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	if err := s.source.WriteThrough(ctx, mutated); err != nil {
		return 0, fmt.Errorf("write orders: %w", err)
	}
	return changed, nil
}
