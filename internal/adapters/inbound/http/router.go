package httpin

import (
	"net/http"

	"orderdesk/internal/ports/inbound"
)

type RouterConfig struct {
	AuthUsername string
	AuthPassword string
}

func NewMux(h *Handlers, uc inbound.OrderUseCase, cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	h.Register(api)

	mux := http.NewServeMux()
	mux.Handle("/health", api)
	mux.Handle("/api/", BasicAuth(cfg.AuthUsername, cfg.AuthPassword, api))

	// The dashboard exposes order details, so it sits behind the same guard
	// as the API.
	ui := NewUI(uc)
	uiMux := http.NewServeMux()
	uiMux.HandleFunc("/", ui.Index)
	uiMux.HandleFunc("/ui/status", ui.FetchStatusSSE)
	mux.Handle("/", BasicAuth(cfg.AuthUsername, cfg.AuthPassword, uiMux))

	return RequestLog(mux)
}
