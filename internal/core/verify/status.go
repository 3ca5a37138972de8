package verify

import "orderdesk/internal/core/domain"

// StatusView is the read-only projection returned to the dialogue engine
// after a successful phone or DOB verification.
type StatusView struct {
	OrderID     int64  `json:"orderId"`
	BookName    string `json:"bookName"`
	UserName    string `json:"userName"`
	PinCode     string `json:"pinCode"`
	Status      string `json:"status"`
	Cancelled   bool   `json:"cancelled"`
	PhoneNumber int64  `json:"phoneNumber"`
	Amount      int64  `json:"amount"`
}

// StatusResult pairs a stage outcome with the projection.
type StatusResult struct {
	OK   bool
	Code Code
	Data StatusView
}

func project(o domain.Order) StatusView {
	return StatusView{
		OrderID:     o.OrderID,
		BookName:    o.BookName,
		UserName:    o.UserName,
		PinCode:     o.PinCode,
		Status:      o.Status,
		Cancelled:   o.Cancelled,
		PhoneNumber: o.PhNum,
		Amount:      o.AmountOrDefault(),
	}
}

// StatusByPhone assembles the tracking projection after phone verification.
func StatusByPhone(orderID, phone any, orders []domain.Order) StatusResult {
	r := Phone(orderID, phone, orders)
	if !r.OK {
		return StatusResult{Code: r.Code}
	}
	return StatusResult{OK: true, Code: CodeStatusOK, Data: project(r.Order)}
}

// StatusByDOB assembles the tracking projection after DOB verification.
func StatusByDOB(orderID, dob any, orders []domain.Order) StatusResult {
	r := DOB(orderID, dob, orders)
	if !r.OK {
		return StatusResult{Code: r.Code}
	}
	return StatusResult{OK: true, Code: CodeStatusOK, Data: project(r.Order)}
}
