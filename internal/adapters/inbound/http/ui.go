package httpin

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"orderdesk/internal/ports/inbound"
	"orderdesk/internal/web"
)

// UI serves the small support dashboard: enter an order id plus phone and
// see the tracking projection, streamed over SSE.
type UI struct {
	uc inbound.OrderUseCase
}

func NewUI(uc inbound.OrderUseCase) *UI {
	return &UI{uc: uc}
}

type uiSignals struct {
	OrderID     string `json:"order_id"`
	PhoneNumber string `json:"phone_number"`
}

func (u *UI) Index(w http.ResponseWriter, r *http.Request) {
	http.FileServer(http.FS(web.MustFS())).ServeHTTP(w, r)
}

func (u *UI) FetchStatusSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	signals := &uiSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		sse.PatchElements(`<p id="status">Bad request: invalid signals</p>`)
		return
	}

	if signals.OrderID == "" || signals.PhoneNumber == "" {
		sse.PatchElements(`<p id="status">Please enter an order id and phone number</p>`)
		return
	}

	sse.PatchElements(`<p id="status">Looking up order...</p>`)

	res, err := u.uc.StatusByPhone(r.Context(), signals.OrderID, signals.PhoneNumber)
	if err != nil {
		sse.PatchElements(`<p id="status">Order data is temporarily unavailable</p>`)
		return
	}
	if !res.OK {
		sse.PatchElements(`<p id="status">Verification failed: ` + htmlEscape(string(res.Code)) + `</p>`)
		sse.PatchElements(`<pre id="result">{}</pre>`)
		return
	}

	b, _ := json.MarshalIndent(res.Data, "", "  ")
	sse.PatchElements(`<p id="status">OK</p>`)
	sse.PatchElements(`<pre id="result">` + htmlEscape(string(b)) + `</pre>`)
}

func htmlEscape(s string) string {
	repl := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return repl.Replace(s)
}
