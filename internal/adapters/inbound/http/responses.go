package httpin

import (
	"encoding/json"
	"net/http"
)

// Dialogue-engine response envelope: parameters steer branching, messages
// are read to the user verbatim.

type sessionInfo struct {
	Parameters map[string]any `json:"parameters"`
}

type fulfillmentResponse struct {
	Messages []message `json:"messages,omitempty"`
}

type message struct {
	Text textBlock `json:"text"`
}

type textBlock struct {
	Text []string `json:"text"`
}

type webhookResponse struct {
	Success             *bool                `json:"success,omitempty"`
	Data                any                  `json:"data,omitempty"`
	Error               string               `json:"error,omitempty"`
	Message             string               `json:"message,omitempty"`
	Code                string               `json:"code,omitempty"`
	UpdatedCount        *int                 `json:"updatedCount,omitempty"`
	FulfillmentResponse *fulfillmentResponse `json:"fulfillmentResponse,omitempty"`
	SessionInfo         *sessionInfo         `json:"sessionInfo,omitempty"`
}

func params(kv map[string]any) *sessionInfo {
	return &sessionInfo{Parameters: kv}
}

func say(texts ...string) *fulfillmentResponse {
	return &fulfillmentResponse{Messages: []message{{Text: textBlock{Text: texts}}}}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
