// Package verify implements the staged verification chain the dialogue
// engine drives: order id existence, phone match, date-of-birth match, and
// the read-only tracking projection. Stages are plain functions over an
// already-loaded collection; each one short-circuits on the failure of the
// stage it builds on.
package verify

import (
	"orderdesk/internal/core/domain"
	"orderdesk/internal/core/normalize"
)

type Code string

const (
	CodeOrderIDRequired  Code = "ORDER_ID_REQUIRED"
	CodeOrderNotFound    Code = "ORDER_NOT_FOUND"
	CodeOrderIDValid     Code = "ORDER_ID_VALID"
	CodePhoneRequired    Code = "PHONE_REQUIRED"
	CodePhoneMismatch    Code = "PHONE_MISMATCH"
	CodePhoneMatch       Code = "PHONE_MATCH"
	CodeDOBRequired      Code = "DOB_REQUIRED"
	CodeDOBNotAvailable  Code = "DOB_NOT_AVAILABLE"
	CodeDOBMismatch      Code = "DOB_MISMATCH"
	CodeDOBMatch         Code = "DOB_MATCH"
	CodeStatusOK         Code = "STATUS_OK"
	CodeAlreadyCancelled Code = "ALREADY_CANCELLED"
	CodeMissingFields    Code = "MISSING_FIELDS"
	CodeCancelDeclined   Code = "CANCEL_DECLINED"
	CodeCancelNotFound   Code = "CANCEL_NOT_FOUND"
	CodeCancelDone       Code = "CANCEL_DONE"
	CodeUpdateFailed     Code = "UPDATE_FAILED"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
)

// Result is the outcome of one verification stage. On success Order holds
// the matched record. Results are ephemeral and never persisted.
type Result struct {
	OK    bool
	Code  Code
	Order domain.Order
}

func fail(code Code) Result { return Result{Code: code} }

func ok(code Code, o domain.Order) Result { return Result{OK: true, Code: code, Order: o} }

// OrderID checks that the input carries a usable id and that a record with
// that id exists. First match wins on duplicate ids.
func OrderID(orderID any, orders []domain.Order) Result {
	id, present := normalize.Number(orderID)
	if !present {
		return fail(CodeOrderIDRequired)
	}
	o, found := domain.FindByID(orders, id)
	if !found {
		return fail(CodeOrderNotFound)
	}
	return ok(CodeOrderIDValid, o)
}

// Phone builds on OrderID and compares the normalized input phone with the
// stored phNum.
func Phone(orderID, phone any, orders []domain.Order) Result {
	idCheck := OrderID(orderID, orders)
	if !idCheck.OK {
		return idCheck
	}
	p, present := normalize.Number(phone)
	if !present {
		return fail(CodePhoneRequired)
	}
	if p != idCheck.Order.PhNum {
		return fail(CodePhoneMismatch)
	}
	return ok(CodePhoneMatch, idCheck.Order)
}

// DOB builds on OrderID and matches candidate sets of the input and stored
// dates, tolerating locale-ambiguous digit-only input on either side.
func DOB(orderID, dob any, orders []domain.Order) Result {
	idCheck := OrderID(orderID, orders)
	if !idCheck.OK {
		return idCheck
	}
	input := normalize.DOBCandidates(dob)
	if len(input) == 0 {
		return fail(CodeDOBRequired)
	}
	stored := normalize.DOBCandidates(idCheck.Order.Dob)
	if len(stored) == 0 {
		return fail(CodeDOBNotAvailable)
	}
	if !normalize.DOBMatch(input, stored) {
		return fail(CodeDOBMismatch)
	}
	return ok(CodeDOBMatch, idCheck.Order)
}
