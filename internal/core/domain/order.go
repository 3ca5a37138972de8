package domain

import "errors"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// DefaultAmount is charged when a record carries no explicit amount.
const DefaultAmount = 299

var (
	ErrNotFound = errors.New("order not found")
)

// Order is one record of the persisted collection document. The document is
// a bare JSON array of these; there is no envelope or version field.
type Order struct {
	OrderID   int64  `json:"orderId"`
	PhNum     int64  `json:"phNum"`
	Dob       any    `json:"dob,omitempty"`
	BookName  string `json:"bookName,omitempty"`
	UserName  string `json:"userName,omitempty"`
	PinCode   string `json:"pinCode,omitempty"`
	Status    string `json:"status,omitempty"`
	Cancelled bool   `json:"cancelled"`
	Amount    int64  `json:"amount,omitempty"`
}

// AmountOrDefault returns the stored amount, falling back to DefaultAmount.
func (o Order) AmountOrDefault() int64 {
	if o.Amount > 0 {
		return o.Amount
	}
	return DefaultAmount
}

// FindByID returns the first record with the given id. Uniqueness of orderId
// is not enforced by the store, so first match wins.
func FindByID(orders []Order, id int64) (Order, bool) {
	for _, o := range orders {
		if o.OrderID == id {
			return o, true
		}
	}
	return Order{}, false
}

// FindByIDAndPhone locates a record by the (orderId, phNum) pair. Mutations
// use this instead of the id alone so an id collision cannot touch another
// customer's record.
func FindByIDAndPhone(orders []Order, id, phone int64) (int, bool) {
	for i, o := range orders {
		if o.OrderID == id && o.PhNum == phone {
			return i, true
		}
	}
	return -1, false
}

// Clone returns an independent copy of the collection. Dob may decode as a
// map, which a plain struct copy would share, so it gets its own copy too.
func Clone(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	for i, o := range out {
		if m, ok := o.Dob.(map[string]any); ok {
			dup := make(map[string]any, len(m))
			for k, v := range m {
				dup[k] = v
			}
			out[i].Dob = dup
		}
	}
	return out
}
