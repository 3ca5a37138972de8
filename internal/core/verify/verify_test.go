package verify

import (
	"testing"

	"orderdesk/internal/core/domain"
)

var orders = []domain.Order{
	{OrderID: 1001, PhNum: 9998887776, Dob: "1990-03-15", BookName: "The Go Programming Language", UserName: "Asha", PinCode: "560001", Status: "active"},
	{OrderID: 1002, PhNum: 9876543210, BookName: "SICP", Status: "shipped"},
	{OrderID: 1003, PhNum: 1112223334, Dob: "02081985", Status: "cancelled", Cancelled: true, Amount: 450},
}

func TestOrderIDRequired(t *testing.T) {
	for _, in := range []any{nil, "", "  ", "abc"} {
		r := OrderID(in, orders)
		if r.OK || r.Code != CodeOrderIDRequired {
			t.Errorf("input %#v: expected ORDER_ID_REQUIRED, got %s", in, r.Code)
		}
	}
}

func TestOrderIDNotFound(t *testing.T) {
	r := OrderID("4242", orders)
	if r.OK || r.Code != CodeOrderNotFound {
		t.Fatalf("expected ORDER_NOT_FOUND, got %s", r.Code)
	}
}

func TestOrderIDFound(t *testing.T) {
	r := OrderID(float64(1001), orders)
	if !r.OK || r.Code != CodeOrderIDValid {
		t.Fatalf("expected ORDER_ID_VALID, got %s", r.Code)
	}
	if r.Order.BookName != "The Go Programming Language" {
		t.Fatalf("stage returned wrong record: %+v", r.Order)
	}
}

func TestOrderIDFirstMatchWins(t *testing.T) {
	dup := append([]domain.Order{{OrderID: 1001, PhNum: 1, BookName: "first"}}, orders...)
	r := OrderID("1001", dup)
	if !r.OK || r.Order.BookName != "first" {
		t.Fatalf("expected the first duplicate, got %+v", r.Order)
	}
}

func TestPhoneFormatsMatchIdentically(t *testing.T) {
	asString := Phone("1002", "9876543210", orders)
	asNumber := Phone("1002", float64(9876543210), orders)
	if !asString.OK || !asNumber.OK {
		t.Fatalf("expected both forms to match: %s / %s", asString.Code, asNumber.Code)
	}
}

func TestPhoneOutcomes(t *testing.T) {
	if r := Phone("1002", nil, orders); r.Code != CodePhoneRequired {
		t.Errorf("expected PHONE_REQUIRED, got %s", r.Code)
	}
	if r := Phone("1002", "1234567", orders); r.Code != CodePhoneMismatch {
		t.Errorf("expected PHONE_MISMATCH, got %s", r.Code)
	}
	if r := Phone("9999", "9876543210", orders); r.Code != CodeOrderNotFound {
		t.Errorf("expected ORDER_NOT_FOUND to short-circuit, got %s", r.Code)
	}
}

func TestDOBOutcomes(t *testing.T) {
	if r := DOB("1001", "15031990", orders); !r.OK || r.Code != CodeDOBMatch {
		t.Errorf("day-first input: expected DOB_MATCH, got %s", r.Code)
	}
	if r := DOB("1001", "03151990", orders); !r.OK {
		t.Errorf("month-first input: expected DOB_MATCH, got %s", r.Code)
	}
	if r := DOB("1001", "", orders); r.Code != CodeDOBRequired {
		t.Errorf("expected DOB_REQUIRED, got %s", r.Code)
	}
	if r := DOB("1002", "15031990", orders); r.Code != CodeDOBNotAvailable {
		t.Errorf("expected DOB_NOT_AVAILABLE for record without dob, got %s", r.Code)
	}
	if r := DOB("1001", "16031990", orders); r.Code != CodeDOBMismatch {
		t.Errorf("expected DOB_MISMATCH, got %s", r.Code)
	}
}

func TestStatusByPhone(t *testing.T) {
	r := StatusByPhone("1001", "9998887776", orders)
	if !r.OK || r.Code != CodeStatusOK {
		t.Fatalf("expected STATUS_OK, got %s", r.Code)
	}
	if r.Data.Status != "active" || r.Data.Cancelled {
		t.Fatalf("unexpected projection: %+v", r.Data)
	}
	if r.Data.Amount != domain.DefaultAmount {
		t.Fatalf("expected default amount, got %d", r.Data.Amount)
	}
}

func TestStatusByDOB(t *testing.T) {
	r := StatusByDOB("1003", "1985-08-02", orders)
	if !r.OK {
		t.Fatalf("expected STATUS_OK, got %s", r.Code)
	}
	if !r.Data.Cancelled || r.Data.Status != "cancelled" {
		t.Fatalf("unexpected projection: %+v", r.Data)
	}
	if r.Data.Amount != 450 {
		t.Fatalf("expected stored amount 450, got %d", r.Data.Amount)
	}
}

func TestStatusPropagatesFailure(t *testing.T) {
	if r := StatusByPhone("1001", "1", orders); r.OK || r.Code != CodePhoneMismatch {
		t.Fatalf("expected PHONE_MISMATCH, got %s", r.Code)
	}
}
