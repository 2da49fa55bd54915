package whatsapp

import (
	"strings"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

// BusinessAccountObject is the only webhook object this service handles.
const BusinessAccountObject = "whatsapp_business_account"

// Webhook is the body of a WhatsApp Cloud API notification.
type Webhook struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Contacts         []Contact        `json:"contacts"`
	Messages         []InboundMessage `json:"messages"`
}

type Contact struct {
	WaID    string   `json:"wa_id"`
	Profile *Profile `json:"profile"`
}

type Profile struct {
	Name *string `json:"name"`
}

type InboundMessage struct {
	ID          *string      `json:"id"`
	From        *string      `json:"from"`
	Type        string       `json:"type"`
	Text        *Text        `json:"text"`
	Interactive *Interactive `json:"interactive"`
}

type Text struct {
	Body *string `json:"body"`
}

type Interactive struct {
	Type        string `json:"type"`
	ListReply   *Reply `json:"list_reply"`
	ButtonReply *Reply `json:"button_reply"`
}

type Reply struct {
	ID    *string `json:"id"`
	Title string  `json:"title"`
}

// Messages flattens the notification into inbound messages in payload order.
// Changes other than "messages" and messages without a sender are skipped.
func (w *Webhook) Messages() []message.Inbound {
	var out []message.Inbound
	for _, e := range w.Entry {
		for _, c := range e.Changes {
			if c.Field != "messages" {
				continue
			}
			for _, m := range c.Value.Messages {
				if m.From == nil || strings.TrimSpace(*m.From) == "" {
					continue
				}
				in := message.Inbound{
					ID:          m.ID,
					From:        strings.TrimPrefix(strings.TrimSpace(*m.From), "+"),
					SelectionID: m.selectionID(),
					ContactName: contactName(c.Value.Contacts, *m.From),
				}
				if m.Text != nil {
					in.Text = m.Text.Body
				}
				out = append(out, in)
			}
		}
	}
	return out
}

func (m InboundMessage) selectionID() *string {
	if m.Interactive == nil {
		return nil
	}
	if r := m.Interactive.ListReply; r != nil && r.ID != nil {
		return r.ID
	}
	if r := m.Interactive.ButtonReply; r != nil && r.ID != nil {
		return r.ID
	}
	return nil
}

// contactName prefers the contact whose wa_id matches the sender and falls
// back to the first contact.
func contactName(contacts []Contact, from string) *string {
	var fallback *string
	for i, c := range contacts {
		if c.Profile == nil || c.Profile.Name == nil || strings.TrimSpace(*c.Profile.Name) == "" {
			continue
		}
		if c.WaID == from {
			return c.Profile.Name
		}
		if i == 0 {
			fallback = c.Profile.Name
		}
	}
	return fallback
}
