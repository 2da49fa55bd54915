package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

var ErrEmptyRecipient = errors.New("recipient is required")

const messagingProduct = "whatsapp"

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type listBody struct {
	Text string `json:"text"`
}

type interactivePayload struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Interactive      interactiveList `json:"interactive"`
}

type interactiveList struct {
	Type   string     `json:"type"`
	Header listHeader `json:"header"`
	Body   listBody   `json:"body"`
	Action listAction `json:"action"`
}

type listHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type listAction struct {
	Button   string            `json:"button"`
	Sections []message.Section `json:"sections"`
}

// graphError is the error envelope returned by the Graph API.
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Gateway sends outbound messages through the WhatsApp Cloud API.
type Gateway struct {
	client *resty.Client
	url    string
	logger *zap.SugaredLogger
}

func NewGateway(cfg Config, logger *zap.SugaredLogger) *Gateway {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.Token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Gateway{client: client, url: cfg.APIURL, logger: logger}
}

// NormalizeRecipient prefixes the phone identifier with '+' when missing.
func NormalizeRecipient(to string) string {
	to = strings.TrimSpace(to)
	if to == "" || strings.HasPrefix(to, "+") {
		return to
	}
	return "+" + to
}

// SendText sends a plain text message. An empty body is skipped.
func (g *Gateway) SendText(ctx context.Context, to, body string) error {
	if strings.TrimSpace(body) == "" {
		g.logger.Debugw("skip empty text message", "phone", to)
		return nil
	}
	to = NormalizeRecipient(to)
	if to == "" {
		return ErrEmptyRecipient
	}
	return g.post(ctx, "text", to, textPayload{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	})
}

// SendInteractiveList sends a list menu.
func (g *Gateway) SendInteractiveList(ctx context.Context, to string, list message.InteractiveList) error {
	to = NormalizeRecipient(to)
	if to == "" {
		return ErrEmptyRecipient
	}
	return g.post(ctx, "interactive", to, interactivePayload{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             "interactive",
		Interactive: interactiveList{
			Type:   "list",
			Header: listHeader{Type: "text", Text: list.Header},
			Body:   listBody{Text: list.Body},
			Action: listAction{Button: list.Button, Sections: list.Sections},
		},
	})
}

func (g *Gateway) post(ctx context.Context, kind, to string, payload any) error {
	var gerr graphError
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(&gerr).
		Post(g.url)
	if err != nil {
		g.logger.Errorw("whatsapp send failed", "kind", kind, "phone", to, "err", err)
		return fmt.Errorf("send %s message: %w", kind, err)
	}
	if resp.IsError() {
		g.logger.Errorw("whatsapp api error",
			"kind", kind,
			"phone", to,
			"status", resp.StatusCode(),
			"message", gerr.Error.Message,
		)
		return fmt.Errorf("send %s message: status %d: %s", kind, resp.StatusCode(), gerr.Error.Message)
	}
	g.logger.Debugw("whatsapp message sent", "kind", kind, "phone", to)
	return nil
}
