package dialogue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

// Engine runs the full turn for an inbound message: route, deliver, log.
// Turns for the same phone identifier never overlap.
type Engine struct {
	router    *Router
	assembler *Assembler
	gateway   Gateway
	locks     *keyedMutex
	logger    *zap.SugaredLogger
}

func NewEngine(router *Router, gateway Gateway, chats ChatLog, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		router:    router,
		assembler: NewAssembler(gateway, chats, logger),
		gateway:   gateway,
		locks:     newKeyedMutex(),
		logger:    logger,
	}
}

// Process handles one message. Any failure is answered with a single
// generic message and returned to the caller for logging.
func (e *Engine) Process(ctx context.Context, in message.Inbound) (err error) {
	unlock := e.locks.Lock(in.From)
	defer unlock()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while processing message: %v", rec)
		}
		if err != nil {
			e.logger.Errorw("turn failed", "phone", in.From, "err", err)
			if sendErr := e.gateway.SendText(ctx, in.From, SomethingWentWrong); sendErr != nil {
				e.logger.Errorw("failed to send fallback message", "phone", in.From, "err", sendErr)
			}
		}
	}()

	d, err := e.router.Route(ctx, in)
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}
	text, _ := in.TextBody()
	if err := e.assembler.Deliver(ctx, in.From, text, d); err != nil {
		return err
	}
	return nil
}
