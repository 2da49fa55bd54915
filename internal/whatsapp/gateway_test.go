package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

type capture struct {
	mu      sync.Mutex
	auth    []string
	bodies  []map[string]any
	status  int
	errBody string
}

func (c *capture) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		c.mu.Lock()
		c.auth = append(c.auth, r.Header.Get("Authorization"))
		c.bodies = append(c.bodies, body)
		status := c.status
		c.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if c.errBody != "" {
			_, _ = w.Write([]byte(c.errBody))
			return
		}
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.1"}]}`))
	}))
}

func newTestGateway(url string) *Gateway {
	return NewGateway(Config{APIURL: url, Token: "secret", Timeout: 2 * time.Second}, zap.NewNop().Sugar())
}

func TestNormalizeRecipient(t *testing.T) {
	assert.Equal(t, "+2348000000000", NormalizeRecipient("2348000000000"))
	assert.Equal(t, "+2348000000000", NormalizeRecipient("+2348000000000"))
	assert.Equal(t, "", NormalizeRecipient("  "))
}

func TestSendText(t *testing.T) {
	c := &capture{}
	srv := c.server(t)
	defer srv.Close()

	require.NoError(t, newTestGateway(srv.URL).SendText(context.Background(), "2348000000000", "hello"))

	require.Len(t, c.bodies, 1)
	assert.Equal(t, "Bearer secret", c.auth[0])
	assert.Equal(t, "whatsapp", c.bodies[0]["messaging_product"])
	assert.Equal(t, "+2348000000000", c.bodies[0]["to"])
	assert.Equal(t, "text", c.bodies[0]["type"])
	assert.Equal(t, map[string]any{"body": "hello"}, c.bodies[0]["text"])
}

func TestSendTextSkipsEmptyBody(t *testing.T) {
	c := &capture{}
	srv := c.server(t)
	defer srv.Close()

	require.NoError(t, newTestGateway(srv.URL).SendText(context.Background(), "2348000000000", "  "))
	assert.Empty(t, c.bodies)
}

func TestSendTextEmptyRecipient(t *testing.T) {
	err := newTestGateway("http://127.0.0.1:1").SendText(context.Background(), "", "hello")
	assert.ErrorIs(t, err, ErrEmptyRecipient)
}

func TestSendInteractiveList(t *testing.T) {
	c := &capture{}
	srv := c.server(t)
	defer srv.Close()

	list := message.InteractiveList{
		Header: "Our Services",
		Body:   "Choose one",
		Button: "Select an option",
		Sections: []message.Section{{
			Title: "Medical Assistance",
			Rows:  []message.Row{{ID: "service_medical_query", Title: "Medical Inquiry", Description: "Ask"}},
		}},
	}
	require.NoError(t, newTestGateway(srv.URL).SendInteractiveList(context.Background(), "+2348000000000", list))

	require.Len(t, c.bodies, 1)
	body := c.bodies[0]
	assert.Equal(t, "interactive", body["type"])
	inter := body["interactive"].(map[string]any)
	assert.Equal(t, "list", inter["type"])
	assert.Equal(t, map[string]any{"type": "text", "text": "Our Services"}, inter["header"])
	assert.Equal(t, map[string]any{"text": "Choose one"}, inter["body"])
	action := inter["action"].(map[string]any)
	assert.Equal(t, "Select an option", action["button"])
	sections := action["sections"].([]any)
	require.Len(t, sections, 1)
	rows := sections[0].(map[string]any)["rows"].([]any)
	assert.Equal(t, "service_medical_query", rows[0].(map[string]any)["id"])
}

func TestSendTextAPIError(t *testing.T) {
	c := &capture{status: http.StatusBadRequest, errBody: `{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`}
	srv := c.server(t)
	defer srv.Close()

	err := newTestGateway(srv.URL).SendText(context.Background(), "2348000000000", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "Invalid parameter")
}
