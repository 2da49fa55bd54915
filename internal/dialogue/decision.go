package dialogue

import "github.com/ovaphlow/pitchfork/service-health-bot/internal/message"

// Action is one outbound send. Exactly one of Text or Menu is set.
type Action struct {
	Text string
	Menu *message.InteractiveList
}

// Decision is the outcome of routing one inbound message.
type Decision struct {
	// Actions are delivered in order.
	Actions []Action
	// LogTurn appends the user message and the text replies to the chat log
	// once every action was delivered.
	LogTurn bool
}

func textActions(texts ...string) []Action {
	out := make([]Action, 0, len(texts))
	for _, t := range texts {
		out = append(out, Action{Text: t})
	}
	return out
}

func reply(texts ...string) Decision {
	return Decision{Actions: textActions(texts...)}
}

func loggedReply(text string) Decision {
	return Decision{Actions: textActions(text), LogTurn: true}
}

func menu(list message.InteractiveList) Action {
	return Action{Menu: &list}
}

// Texts returns the bodies of the text actions in order.
func (d Decision) Texts() []string {
	var out []string
	for _, a := range d.Actions {
		if a.Menu == nil {
			out = append(out, a.Text)
		}
	}
	return out
}
