// Package message holds the transport-neutral shapes exchanged between the
// webhook receiver, the dialogue engine and the messaging gateway.
package message

import "strings"

// Inbound is one user message as delivered by the webhook. Every field the
// platform may omit is a pointer; callers must handle nil explicitly.
type Inbound struct {
	// ID is the platform message id, used to drop redeliveries.
	ID *string
	// From is the sender's phone identifier, without a leading '+'.
	From string
	// Text is the body of a text message.
	Text *string
	// SelectionID is set when the user picked a row of an interactive menu.
	SelectionID *string
	// ContactName is the WhatsApp profile name of the sender.
	ContactName *string
}

// TextBody returns the trimmed text body and whether one was present.
func (m Inbound) TextBody() (string, bool) {
	if m.Text == nil {
		return "", false
	}
	t := strings.TrimSpace(*m.Text)
	if t == "" {
		return "", false
	}
	return t, true
}

// Row is a selectable entry of an interactive list.
type Row struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Section groups rows under a title.
type Section struct {
	Title string `yaml:"title" json:"title"`
	Rows  []Row  `yaml:"rows" json:"rows"`
}

// InteractiveList is a list menu: a header, a body, the button that opens the
// list and its sections.
type InteractiveList struct {
	Header   string    `yaml:"header"`
	Body     string    `yaml:"body"`
	Button   string    `yaml:"button"`
	Sections []Section `yaml:"sections"`
}

// Ptr returns a pointer to s. Handy for building Inbound values.
func Ptr(s string) *string { return &s }
