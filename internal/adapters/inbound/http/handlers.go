package httpin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"orderdesk/internal/core/verify"
	"orderdesk/internal/logging"
	"orderdesk/internal/ports/inbound"
)

type Handlers struct {
	uc  inbound.OrderUseCase
	log *slog.Logger
}

func NewHandlers(uc inbound.OrderUseCase) *Handlers {
	return &Handlers{uc: uc, log: logging.New("webhook")}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/api/order", h.order)
	mux.HandleFunc("/api/orderCancel", h.orderCancel)
	mux.HandleFunc("/api/updateCancelledOrders", h.updateCancelledOrders)
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request) (*webhookRequest, bool) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, webhookResponse{Error: "invalid request body"}, http.StatusBadRequest)
		return nil, false
	}
	if req.forceRefresh() || r.URL.Query().Get("forceRefresh") == "true" || r.URL.Query().Get("refreshCache") == "true" {
		h.log.Info("force refresh requested, invalidating cache")
		h.uc.InvalidateOrders()
	}
	return &req, true
}

// order serves the tracking flow: order-id, phone and DOB verification plus
// the status projection. Every outcome is a structured 200 so the dialogue
// engine can always branch; store failures carry STORE_UNAVAILABLE.
func (h *Handlers) order(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	tag := req.tag()
	h.log.Info("order webhook", "tag", tag)

	switch tag {
	case tagVerifyOrderID:
		res, err := h.uc.VerifyOrderID(ctx, req.orderID())
		if err != nil {
			h.storeFailure(w, err, map[string]any{"orderFound": "false"})
			return
		}
		writeJSON(w, webhookResponse{
			SessionInfo: params(map[string]any{"orderFound": flag(res.OK)}),
		}, http.StatusOK)

	case tagVerifyPhone:
		res, err := h.uc.VerifyPhone(ctx, req.orderID(), req.phone())
		if err != nil {
			h.storeFailure(w, err, map[string]any{"phoneFound": "false"})
			return
		}
		writeJSON(w, webhookResponse{
			SessionInfo: params(map[string]any{"phoneFound": flag(res.OK)}),
		}, http.StatusOK)

	case tagVerifyDOB:
		res, err := h.uc.VerifyDOB(ctx, req.orderID(), req.dob())
		if err != nil {
			h.storeFailure(w, err, map[string]any{"dobFound": "false"})
			return
		}
		writeJSON(w, webhookResponse{
			SessionInfo: params(map[string]any{"dobFound": flag(res.OK)}),
		}, http.StatusOK)

	case tagFetchStatus:
		res, err := h.uc.StatusByDOB(ctx, req.orderID(), req.dob())
		if err != nil {
			h.storeFailure(w, err, nil)
			return
		}
		if !res.OK {
			writeJSON(w, webhookResponse{
				Success: boolPtr(false),
				Error:   "Tracking order validation failed",
				Code:    string(res.Code),
			}, http.StatusOK)
			return
		}
		writeJSON(w, webhookResponse{
			Success:     boolPtr(true),
			Data:        res.Data,
			SessionInfo: params(map[string]any{"status": res.Data.Status}),
		}, http.StatusOK)

	default:
		// Plain id lookup kept for backward compatibility.
		res, err := h.uc.LookupOrder(ctx, req.orderID())
		if err != nil {
			h.storeFailure(w, err, nil)
			return
		}
		switch res.Code {
		case verify.CodeOrderIDRequired:
			writeJSON(w, webhookResponse{Error: "Order ID is required"}, http.StatusBadRequest)
		case verify.CodeOrderNotFound:
			writeJSON(w, webhookResponse{Error: "Order not found"}, http.StatusNotFound)
		default:
			writeJSON(w, webhookResponse{Success: boolPtr(true), Data: res.Order}, http.StatusOK)
		}
	}
}

// orderCancel serves the cancellation flow.
func (h *Handlers) orderCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	tag := req.tag()
	h.log.Info("cancel webhook", "tag", tag)

	switch tag {
	case tagVerifyOrderCancel, tagVerifyOrderCancelV1:
		res, err := h.uc.VerifyOrderForCancel(ctx, req.orderID())
		if err != nil {
			h.storeFailure(w, err, map[string]any{"orderFound": "false"})
			return
		}
		if !res.OK {
			writeJSON(w, webhookResponse{
				FulfillmentResponse: &fulfillmentResponse{},
				SessionInfo:         params(map[string]any{"orderFound": "false"}),
			}, http.StatusOK)
			return
		}
		writeJSON(w, webhookResponse{
			FulfillmentResponse: &fulfillmentResponse{},
			SessionInfo: params(map[string]any{
				"orderFound":  "true",
				"bookName":    res.Order.BookName,
				"orderStatus": res.Order.Status,
			}),
		}, http.StatusOK)

	case tagVerifyPhoneCancel:
		res, err := h.uc.VerifyPhoneForCancel(ctx, req.orderID(), req.phone())
		if err != nil {
			h.storeFailure(w, err, map[string]any{"phoneVerified": "false"})
			return
		}
		switch {
		case res.Code == verify.CodeMissingFields:
			writeJSON(w, webhookResponse{
				Success: boolPtr(false),
				Error:   "Missing required fields",
				Message: "Both orderId and phoneNumber are required",
			}, http.StatusBadRequest)
		case res.Code == verify.CodeAlreadyCancelled:
			writeJSON(w, webhookResponse{
				FulfillmentResponse: say("Good news! This order has already been cancelled. No further action needed."),
				SessionInfo: params(map[string]any{
					"phoneVerified": "true",
					"orderStatus":   "cancelled",
				}),
			}, http.StatusOK)
		case res.OK:
			writeJSON(w, webhookResponse{
				FulfillmentResponse: &fulfillmentResponse{},
				SessionInfo:         params(map[string]any{"phoneVerified": "true"}),
			}, http.StatusOK)
		default:
			writeJSON(w, webhookResponse{
				FulfillmentResponse: &fulfillmentResponse{},
				SessionInfo:         params(map[string]any{"phoneVerified": "false"}),
			}, http.StatusOK)
		}

	case tagCancelOrder:
		h.cancelOrder(w, r, req)

	default:
		writeJSON(w, webhookResponse{
			FulfillmentResponse: say("Unknown operation. Please try again."),
		}, http.StatusBadRequest)
	}
}

func (h *Handlers) cancelOrder(w http.ResponseWriter, r *http.Request, req *webhookRequest) {
	out, err := h.uc.Cancel(r.Context(), req.orderID(), req.phone(), req.confirmation())
	if err != nil {
		// A failed write keeps UPDATE_FAILED; a failed read is the same
		// STORE_UNAVAILABLE condition as everywhere else.
		if out.Code == verify.CodeUpdateFailed {
			h.log.Error("cancel write failed", "err", err)
			writeJSON(w, webhookResponse{
				Code:                string(verify.CodeUpdateFailed),
				FulfillmentResponse: say("Failed to cancel order. Please try again or contact customer support."),
			}, http.StatusInternalServerError)
			return
		}
		h.storeFailure(w, err, nil)
		return
	}

	switch out.Code {
	case verify.CodeCancelDeclined:
		writeJSON(w, webhookResponse{
			FulfillmentResponse: say("Order cancellation has been cancelled. Your order remains active."),
			SessionInfo: params(map[string]any{
				"cancellationComplete": "false",
				"cancellationDeclined": "true",
			}),
		}, http.StatusOK)

	case verify.CodeMissingFields:
		writeJSON(w, webhookResponse{
			FulfillmentResponse: &fulfillmentResponse{},
		}, http.StatusBadRequest)

	case verify.CodeAlreadyCancelled:
		writeJSON(w, webhookResponse{
			FulfillmentResponse: say("Good news! This order has already been cancelled. No further action needed."),
			SessionInfo: params(map[string]any{
				"cancellationComplete": "false",
				"orderStatus":          "cancelled",
			}),
		}, http.StatusOK)

	case verify.CodeCancelNotFound:
		writeJSON(w, webhookResponse{
			FulfillmentResponse: say("Order not found for cancellation."),
		}, http.StatusOK)

	case verify.CodeCancelDone:
		writeJSON(w, webhookResponse{
			FulfillmentResponse: say(fmt.Sprintf(
				"Success! Your order for %q (Order ID: %d) has been cancelled successfully. You will receive a confirmation email shortly.",
				out.Order.BookName, out.Order.OrderID,
			)),
			SessionInfo: params(map[string]any{
				"cancellationComplete": "true",
				"cancelledOrderId":     out.Order.OrderID,
				"cancelledBookName":    out.Order.BookName,
			}),
		}, http.StatusOK)

	default:
		// Verification failed; the engine re-prompts.
		writeJSON(w, webhookResponse{
			FulfillmentResponse: &fulfillmentResponse{},
		}, http.StatusOK)
	}
}

// updateCancelledOrders is the maintenance endpoint flipping every cancelled
// record back to active.
func (h *Handlers) updateCancelledOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	changed, err := h.uc.Reactivate(r.Context())
	if err != nil {
		h.log.Error("reactivate failed", "err", err)
		writeJSON(w, webhookResponse{
			Success: boolPtr(false),
			Error:   "Failed to update cancelled orders",
			Message: err.Error(),
		}, http.StatusInternalServerError)
		return
	}

	msg := fmt.Sprintf("Successfully updated %d orders from cancelled=true to cancelled=false", changed)
	if changed == 0 {
		msg = "No cancelled orders found to update"
	}
	h.log.Info("reactivated orders", "changed", changed)
	writeJSON(w, webhookResponse{
		Success:      boolPtr(true),
		Message:      msg,
		UpdatedCount: intPtr(changed),
	}, http.StatusOK)
}

// storeFailure answers with a stable fallback outcome when the backing store
// is unreachable; the dialogue engine still gets parameters to branch on.
func (h *Handlers) storeFailure(w http.ResponseWriter, err error, fallback map[string]any) {
	h.log.Error("store unavailable", "err", err)
	resp := webhookResponse{
		Success: boolPtr(false),
		Code:    string(verify.CodeStoreUnavailable),
		Error:   "Order data is temporarily unavailable",
	}
	if fallback != nil {
		resp.SessionInfo = params(fallback)
	}
	writeJSON(w, resp, http.StatusOK)
}

func flag(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}
