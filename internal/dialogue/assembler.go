package dialogue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	chatentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
)

// Assembler delivers a Decision through the gateway and records the turn.
type Assembler struct {
	gateway Gateway
	chats   ChatLog
	logger  *zap.SugaredLogger
}

func NewAssembler(gateway Gateway, chats ChatLog, logger *zap.SugaredLogger) *Assembler {
	return &Assembler{gateway: gateway, chats: chats, logger: logger}
}

// Deliver sends every action in order and stops at the first failure.
func (a *Assembler) Deliver(ctx context.Context, phone, userText string, d Decision) error {
	for i, act := range d.Actions {
		var err error
		if act.Menu != nil {
			err = a.gateway.SendInteractiveList(ctx, phone, *act.Menu)
		} else {
			err = a.gateway.SendText(ctx, phone, act.Text)
		}
		if err != nil {
			return fmt.Errorf("deliver action %d: %w", i, err)
		}
	}
	if !d.LogTurn {
		return nil
	}

	if err := a.chats.Append(ctx, phone, userText, chatentity.RoleUser); err != nil {
		return fmt.Errorf("log user message: %w", err)
	}
	for _, t := range d.Texts() {
		if t == "" {
			continue
		}
		if err := a.chats.Append(ctx, phone, t, chatentity.RoleBot); err != nil {
			return fmt.Errorf("log bot reply: %w", err)
		}
	}
	a.logger.Debugw("turn logged", "phone", phone, "replies", len(d.Actions))
	return nil
}
