package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/travel-weather-agent/internal/agent"
	"github.com/i474232898/travel-weather-agent/internal/logger"
	"github.com/i474232898/travel-weather-agent/internal/weather/providers"
)

type stubService struct {
	got  agent.ChatRequest
	resp *agent.ChatResponse
	err  error
}

func (s *stubService) Handle(_ context.Context, req agent.ChatRequest) (*agent.ChatResponse, error) {
	s.got = req
	return s.resp, s.err
}

func doJSON(t *testing.T, svc ChatService, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	app := NewApp(false)
	RegisterRoutes(app, svc)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp.StatusCode, out
}

func TestChat_ParsesBody(t *testing.T) {
	svc := &stubService{resp: &agent.ChatResponse{SessionID: "s", NeedsDestination: true, Reply: agent.ReplyAskForDestination}}

	status, body := doJSON(t, svc, http.MethodPost, "/api/v1/chat", `{"sessionId":"s","message":"ahoj","destination":"Brno"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, agent.ChatRequest{SessionID: "s", Message: "ahoj", Destination: "Brno"}, svc.got)
	assert.Equal(t, true, body["needsDestination"])
	assert.Contains(t, body, "destinationResolved")
	assert.Nil(t, body["destinationResolved"])
	assert.NotContains(t, body, "weather")
}

func TestChat_MalformedBodyIsEmptyRequest(t *testing.T) {
	svc := &stubService{resp: &agent.ChatResponse{SessionID: "generated", NeedsDestination: true}}

	status, _ := doJSON(t, svc, http.MethodPost, "/chat", `{"message":`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, agent.ChatRequest{}, svc.got)
}

func TestChat_FatalErrorIs500JSON(t *testing.T) {
	svc := &stubService{err: errors.New("forecast: HTTP GET failed: 503")}

	status, body := doJSON(t, svc, http.MethodPost, "/api/v1/chat", `{"destination":"Prague"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal error: forecast: HTTP GET failed: 503", body["error"])
}

func TestHealth(t *testing.T) {
	status, body := doJSON(t, &stubService{}, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := NewApp(false)
	RegisterRoutes(app, &stubService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// End to end through the real service and Open-Meteo clients against fake upstreams.
func TestChat_EndToEnd(t *testing.T) {
	geocoding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("name") {
		case "Prahy":
			_, _ = w.Write([]byte(`{"results":[{"name":"Prague","latitude":50.088,"longitude":14.42,"country":"Czechia","timezone":"Europe/Prague"}]}`))
		default:
			_, _ = w.Write([]byte(`{"generationtime_ms":0.3}`))
		}
	}))
	defer geocoding.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-10-15","2026-10-16"],"temperature_2m_max":[14.2,null],"temperature_2m_min":[4.4,5.1],"precipitation_sum":[0,1.25]}}`))
	}))
	defer forecast.Close()

	client := providers.NewHTTPClient(time.Second, 2*time.Second)
	log := logger.NewTestLogger(t)
	svc := agent.NewService(
		agent.NewExtractor(nil, time.Second, log),
		providers.NewOpenMeteoGeocoder(client, geocoding.URL, "cs"),
		providers.NewOpenMeteoForecaster(client, forecast.URL),
		log,
	)

	t.Run("success", func(t *testing.T) {
		status, body := doJSON(t, svc, http.MethodPost, "/api/v1/chat", `{"sessionId":"abc","message":"Chci jet do Prahy"}`)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "abc", body["sessionId"])
		assert.Equal(t, false, body["needsDestination"])
		assert.Equal(t, "Prague, Czechia", body["destinationResolved"])
		assert.True(t, strings.HasPrefix(body["reply"].(string), "Předpověď na 7 dní pro Prague (50.088, 14.420), Czechia:"))
		assert.Contains(t, body["reply"], "- 2026-10-16: max NaN°C / min 5°C")

		w, ok := body["weather"].(map[string]interface{})
		require.True(t, ok)
		daily := w["daily"].(map[string]interface{})
		assert.Equal(t, []interface{}{14.2, nil}, daily["temperature_2m_max"])
	})

	t.Run("not found", func(t *testing.T) {
		status, body := doJSON(t, svc, http.MethodPost, "/api/v1/chat", `{"destination":"Nonexistentistan"}`)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["needsDestination"])
		assert.Nil(t, body["destinationResolved"])
		assert.Equal(t, agent.ReplyDestinationNotFound, body["reply"])
		assert.NotEmpty(t, body["sessionId"])
	})

	t.Run("ask for destination", func(t *testing.T) {
		status, body := doJSON(t, svc, http.MethodPost, "/api/v1/chat", ``)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, agent.ReplyAskForDestination, body["reply"])
	})
}
