package agent

import (
	"bytes"
	"encoding/json"

	"github.com/i474232898/travel-weather-agent/internal/weather"
)

// Fixed replies for the terminal non-success states.
const (
	ReplyAskForDestination   = "Kam chceš jet na dovolenou? Napiš město nebo místo."
	ReplyDestinationNotFound = "Nenašel jsem tu destinaci. Zkus prosím konkrétnější název města/místa."
)

// ChatRequest is the inbound chat message. All fields are optional.
type ChatRequest struct {
	SessionID   string `json:"sessionId"`
	Message     string `json:"message"`
	Destination string `json:"destination"`
}

// ChatResponse is returned on every handled branch. Weather is set only on success.
type ChatResponse struct {
	SessionID           string                    `json:"sessionId"`
	NeedsDestination    bool                      `json:"needsDestination"`
	DestinationResolved *string                   `json:"destinationResolved"`
	Reply               string                    `json:"reply"`
	Weather             *weather.ForecastResponse `json:"weather,omitempty"`
}

// ParseChatRequest decodes a request body. An empty or malformed body yields an empty
// request rather than an error.
func ParseChatRequest(body []byte) ChatRequest {
	var req ChatRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return ChatRequest{}
	}
	return req
}
