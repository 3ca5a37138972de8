package httpin

import (
	"fmt"
	"strings"
)

// Dialogue-engine tags. The engine selects a verification/mutation step by
// sending one of these with each webhook call.
const (
	tagVerifyOrderID       = "verify-orderid"
	tagVerifyPhone         = "verify-phonenumber"
	tagVerifyDOB           = "verify-dob"
	tagFetchStatus         = "fetch-status"
	tagVerifyOrderCancel   = "verify-orderid-cancel"
	tagVerifyOrderCancelV1 = "verify_orderId"
	tagVerifyPhoneCancel   = "verify-phone-cancel"
	tagCancelOrder         = "cancel-order"
)

// webhookRequest accepts both the flat test shape and the dialogue engine's
// envelope (fulfillmentInfo.tag + sessionInfo.parameters).
type webhookRequest struct {
	Tag             string `json:"tag"`
	FulfillmentInfo struct {
		Tag string `json:"tag"`
	} `json:"fulfillmentInfo"`
	SessionInfo struct {
		Parameters map[string]any `json:"parameters"`
	} `json:"sessionInfo"`

	// Flat fallbacks for direct calls.
	OrderID      any `json:"orderId"`
	PhoneNumber  any `json:"phonenumber"`
	Dob          any `json:"dob"`
	ForceRefresh any `json:"forceRefresh"`
}

func (r *webhookRequest) tag() string {
	if r.Tag != "" {
		return r.Tag
	}
	return r.FulfillmentInfo.Tag
}

// param resolves a field by its known aliases, first non-empty wins. Session
// parameters take precedence over the flat fallback.
func (r *webhookRequest) param(fallback any, aliases ...string) any {
	for _, name := range aliases {
		if v, ok := r.SessionInfo.Parameters[name]; ok && !empty(v) {
			return v
		}
	}
	if !empty(fallback) {
		return fallback
	}
	return nil
}

func (r *webhookRequest) orderID() any {
	return r.param(r.OrderID, "orderid", "orderId", "order_id")
}

func (r *webhookRequest) phone() any {
	return r.param(r.PhoneNumber, "phonenumber", "phoneNumber", "phone_number")
}

func (r *webhookRequest) dob() any {
	return r.param(r.Dob, "dob", "date_of_birth", "birthdate", "dateOfBirth")
}

func (r *webhookRequest) confirmation() string {
	v := r.param(nil, "confirmationresponse", "confirmationResponse", "confirmation_response")
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func (r *webhookRequest) forceRefresh() bool {
	return truthy(r.ForceRefresh) || truthy(r.SessionInfo.Parameters["forceRefresh"])
}

func empty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}
