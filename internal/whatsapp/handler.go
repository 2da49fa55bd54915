package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

const maxWebhookBody = 1 << 20

// Processor handles one inbound message end to end.
type Processor interface {
	Process(ctx context.Context, in message.Inbound) error
}

// Handler serves the WhatsApp webhook.
type Handler struct {
	verifyToken string
	proc        Processor
	dedupe      *Deduper
	logger      *zap.SugaredLogger
}

func NewHandler(cfg Config, proc Processor, dedupe *Deduper, logger *zap.SugaredLogger) *Handler {
	return &Handler{verifyToken: cfg.VerifyToken, proc: proc, dedupe: dedupe, logger: logger}
}

// Verify answers the subscription handshake.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && h.verifyToken != "" && q.Get("hub.verify_token") == h.verifyToken {
		h.logger.Infow("webhook verification succeeded")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	h.logger.Warnw("webhook verification failed", "mode", q.Get("hub.mode"))
	http.Error(w, "Verification failed", http.StatusForbidden)
}

// Receive processes a notification. It always answers 200 so the platform
// does not redeliver payloads this service cannot use.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	var payload Webhook
	if err := json.NewDecoder(io.LimitReader(r.Body, maxWebhookBody)).Decode(&payload); err != nil {
		h.logger.Debugw("invalid webhook payload", "err", err)
		return
	}
	if payload.Object != BusinessAccountObject {
		h.logger.Warnw("unexpected webhook object", "object", payload.Object)
		return
	}

	msgs := payload.Messages()
	if len(msgs) == 0 {
		return
	}
	h.Dispatch(context.WithoutCancel(r.Context()), msgs)
}

// Dispatch runs each sender's messages in order; different senders run
// concurrently.
func (h *Handler) Dispatch(ctx context.Context, msgs []message.Inbound) {
	var order []string
	bySender := make(map[string][]message.Inbound)
	for _, m := range msgs {
		if _, ok := bySender[m.From]; !ok {
			order = append(order, m.From)
		}
		bySender[m.From] = append(bySender[m.From], m)
	}

	var g errgroup.Group
	for _, from := range order {
		batch := bySender[from]
		g.Go(func() error {
			for _, m := range batch {
				if m.ID != nil && !h.dedupe.Claim(ctx, *m.ID) {
					continue
				}
				if err := h.proc.Process(ctx, m); err != nil {
					h.logger.Errorw("message processing failed", "phone", m.From, "err", err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}
