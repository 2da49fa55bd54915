package whatsapp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen map[string][]string
	err  error
}

func (p *recordingProcessor) Process(_ context.Context, in message.Inbound) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seen == nil {
		p.seen = map[string][]string{}
	}
	id := ""
	if in.ID != nil {
		id = *in.ID
	}
	p.seen[in.From] = append(p.seen[in.From], id)
	return p.err
}

func TestVerify(t *testing.T) {
	h := NewHandler(Config{VerifyToken: "tok"}, &recordingProcessor{}, nil, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=tok&hub.challenge=1234", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1234", rec.Body.String())

	for _, q := range []string{
		"hub.mode=subscribe&hub.verify_token=bad&hub.challenge=1234",
		"hub.mode=unsubscribe&hub.verify_token=tok&hub.challenge=1234",
		"hub.challenge=1234",
	} {
		rec = httptest.NewRecorder()
		h.Verify(rec, httptest.NewRequest(http.MethodGet, "/webhook?"+q, nil))
		assert.Equal(t, http.StatusForbidden, rec.Code, q)
		assert.Contains(t, rec.Body.String(), "Verification failed")
	}
}

func TestReceiveIgnoresMalformed(t *testing.T) {
	p := &recordingProcessor{}
	h := NewHandler(Config{}, p, nil, zap.NewNop().Sugar())

	for _, body := range []string{
		"not json",
		`{"object":"page","entry":[]}`,
		`{"object":"whatsapp_business_account","entry":[{"changes":[{"field":"messages","value":{}}]}]}`,
	} {
		rec := httptest.NewRecorder()
		h.Receive(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Empty(t, p.seen)
}

func TestReceiveGroupsBySenderInOrder(t *testing.T) {
	p := &recordingProcessor{err: errors.New("boom")}
	h := NewHandler(Config{}, p, nil, zap.NewNop().Sugar())

	body := `{"object":"whatsapp_business_account","entry":[{"changes":[{"field":"messages","value":{"messages":[
		{"id":"a1","from":"111","type":"text","text":{"body":"one"}},
		{"id":"b1","from":"222","type":"text","text":{"body":"uno"}},
		{"id":"a2","from":"111","type":"text","text":{"body":"two"}},
		{"id":"a3","from":"111","type":"text","text":{"body":"three"}}
	]}}]}]}`
	rec := httptest.NewRecorder()
	h.Receive(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a1", "a2", "a3"}, p.seen["111"])
	assert.Equal(t, []string{"b1"}, p.seen["222"])
}

func TestReceiveSkipsRedeliveries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(DedupeConfig{Addr: mr.Addr()})
	require.NotNil(t, client)
	defer client.Close()

	p := &recordingProcessor{}
	h := NewHandler(Config{}, p, NewDeduper(client, 0, zap.NewNop().Sugar()), zap.NewNop().Sugar())

	body := `{"object":"whatsapp_business_account","entry":[{"changes":[{"field":"messages","value":{"messages":[
		{"id":"a1","from":"111","type":"text","text":{"body":"one"}}]}}]}]}`
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.Receive(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, []string{"a1"}, p.seen["111"])
}
