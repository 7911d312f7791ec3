package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NextMind-AI/relay-go/relay"
)

type fakeHandler struct {
	mu          sync.Mutex
	events      []relay.Event
	status      relay.Status
	hasDeadline bool
	panicWith   any
}

func (f *fakeHandler) Handle(ctx context.Context, event relay.Event) relay.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)
	_, f.hasDeadline = ctx.Deadline()
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if unrecognized, ok := event.(relay.Unrecognized); ok {
		return relay.Status{Status: unrecognized.Status}
	}
	return f.status
}

type fakeValidator struct {
	valid     bool
	url       string
	params    map[string]string
	signature string
}

func (f *fakeValidator) ValidateSignature(url string, params map[string]string, signature string) bool {
	f.url, f.params, f.signature = url, params, signature
	return f.valid
}

func doRequest(t *testing.T, srv *Server, method, path, contentType, body string, headers map[string]string) (int, map[string]string) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	return resp.StatusCode, payload
}

func TestHealthCheck(t *testing.T) {
	srv := New(Config{}, &fakeHandler{}, nil)

	for _, path := range []string{"/", "/health"} {
		code, payload := doRequest(t, srv, http.MethodGet, path, "", "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]string{"status": "ok", "message": "Server is running smoothly."}, payload)
	}
}

func TestWebhook_Telegram(t *testing.T) {
	handler := &fakeHandler{status: relay.Success()}
	srv := New(Config{RequestTimeout: 5 * time.Second}, handler, nil)

	body := `{"update_id": 1, "message": {"message_id": 5, "chat": {"id": 42}, "from": {"id": 7}, "text": "/start"}}`
	code, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/json", body, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", payload["status"])
	require.Len(t, handler.events, 1)
	assert.Equal(t, relay.TelegramMessage{ChatID: 42, UserID: 7, Text: "/start", HasText: true}, handler.events[0])
	assert.True(t, handler.hasDeadline)
}

func TestWebhook_ErrorStatusIsStill200(t *testing.T) {
	handler := &fakeHandler{status: relay.Status{Status: relay.StatusError, Message: "backend unavailable"}}
	srv := New(Config{}, handler, nil)

	body := `{"message": {"chat": {"id": 42}, "from": {"id": 7}, "text": "hi"}}`
	code, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/json", body, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]string{"status": "error", "message": "backend unavailable"}, payload)
}

func TestWebhook_Unrecognized(t *testing.T) {
	srv := New(Config{}, &fakeHandler{}, nil)

	code, payload := doRequest(t, srv, http.MethodPost, "/webhook", "text/plain", "hello", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unsupported content type", payload["status"])

	code, payload = doRequest(t, srv, http.MethodPost, "/webhook", "application/json", `{"update_id": 9}`, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unhandled", payload["status"])
}

func TestWebhook_MalformedJSON(t *testing.T) {
	handler := &fakeHandler{}
	srv := New(Config{}, handler, nil)

	code, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/json", `{"message": `, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", payload["status"])
	assert.NotEmpty(t, payload["message"])
	assert.Empty(t, handler.events)
}

func TestWebhook_SMSSignature(t *testing.T) {
	body := "From=%2B39333&Body=Ciao&NumMedia=0"

	t.Run("valid", func(t *testing.T) {
		handler := &fakeHandler{status: relay.Success()}
		validator := &fakeValidator{valid: true}
		srv := New(Config{WebhookURL: "https://relay.example.com/webhook"}, handler, validator)

		_, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/x-www-form-urlencoded", body,
			map[string]string{"X-Twilio-Signature": "sig"})

		assert.Equal(t, "success", payload["status"])
		assert.Equal(t, "https://relay.example.com/webhook", validator.url)
		assert.Equal(t, "sig", validator.signature)
		assert.Equal(t, "Ciao", validator.params["Body"])
		assert.Len(t, handler.events, 1)
	})

	t.Run("invalid", func(t *testing.T) {
		handler := &fakeHandler{status: relay.Success()}
		srv := New(Config{WebhookURL: "https://relay.example.com/webhook"}, handler, &fakeValidator{valid: false})

		code, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/x-www-form-urlencoded", body, nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "unauthorized", payload["status"])
		assert.Empty(t, handler.events)
	})

	t.Run("disabled without webhook url", func(t *testing.T) {
		handler := &fakeHandler{status: relay.Success()}
		srv := New(Config{}, handler, &fakeValidator{valid: false})

		_, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/x-www-form-urlencoded", body, nil)

		assert.Equal(t, "success", payload["status"])
		assert.Len(t, handler.events, 1)
	})
}

func TestWebhook_PanicIsReportedAsError(t *testing.T) {
	handler := &fakeHandler{panicWith: "boom"}
	srv := New(Config{}, handler, nil)

	body := `{"message": {"chat": {"id": 42}, "from": {"id": 7}, "text": "hi"}}`
	code, payload := doRequest(t, srv, http.MethodPost, "/webhook", "application/json", body, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", payload["status"])
}
