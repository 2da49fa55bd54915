package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user"
	userentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// escalationPhrases are matched as substrings of the lower-cased text.
var escalationPhrases = []string{
	"yes talk to doctor",
	"talk to a doctor",
	"talk to doctor",
	"speak to a doctor",
	"speak to doctor",
	"connect me to a doctor",
}

// greetings are matched as substrings of the lower-cased first message.
var greetings = []string{
	"hi",
	"hello",
	"hey",
	"yo",
	"good morning",
	"good evening",
	"greetings",
	"good afternoon",
	"howdy",
	"my name is",
	"i am",
}

// Router decides what happens to one inbound message. It performs the
// record-store writes of the turn and returns the outbound actions; it never
// talks to the gateway itself.
type Router struct {
	cfg        Config
	users      UserStore
	complaints ComplaintStore
	chats      ChatLog
	oracle     Oracle
	catalog    *Catalog
	logger     *zap.SugaredLogger
}

func NewRouter(cfg Config, users UserStore, complaints ComplaintStore, chats ChatLog, oracle Oracle, catalog *Catalog, logger *zap.SugaredLogger) *Router {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Router{
		cfg:        cfg.withDefaults(),
		users:      users,
		complaints: complaints,
		chats:      chats,
		oracle:     oracle,
		catalog:    catalog,
		logger:     logger,
	}
}

// Route evaluates the branches in order and returns the first match.
func (r *Router) Route(ctx context.Context, in message.Inbound) (Decision, error) {
	if in.SelectionID != nil {
		return r.selection(*in.SelectionID), nil
	}

	text, ok := in.TextBody()
	if !ok {
		return reply(OnlyText), nil
	}

	if isEscalation(text) {
		r.logger.Infow("doctor escalation requested", "phone", in.From)
		return reply(EscalationAck, EscalationFailed), nil
	}

	if strings.HasPrefix(text, "/") {
		return r.command(ctx, in.From, text)
	}

	_, err := r.users.FindByPhone(ctx, in.From)
	if errors.Is(err, user.ErrUserNotFound) {
		return r.firstContact(ctx, in, text)
	}
	if err != nil {
		return Decision{}, fmt.Errorf("find user: %w", err)
	}

	state, err := r.users.FindOnboarding(ctx, in.From)
	switch {
	case err == nil && !state.Completed():
		answer, err := r.onboard(ctx, in.From, state, text)
		if err != nil {
			return Decision{}, err
		}
		if answer == nil {
			return Decision{}, nil
		}
		return reply(*answer), nil
	case err != nil && !errors.Is(err, user.ErrOnboardingNotFound):
		return Decision{}, fmt.Errorf("find onboarding: %w", err)
	}

	return r.handleReply(ctx, in.From, text)
}

func (r *Router) selection(id string) Decision {
	text, ok := r.catalog.Selection(id)
	if !ok {
		r.logger.Debugw("unknown menu selection", "selection", id)
		return reply(UnknownOption)
	}
	return reply(text)
}

func (r *Router) firstContact(ctx context.Context, in message.Inbound, text string) (Decision, error) {
	u := &userentity.User{Phone: in.From}
	if in.ContactName != nil && strings.TrimSpace(*in.ContactName) != "" {
		name := strings.TrimSpace(*in.ContactName)
		u.ProfileName = &name
	}
	if err := r.users.Create(ctx, u); err != nil {
		return Decision{}, fmt.Errorf("create user: %w", err)
	}
	if err := r.users.CreateOnboarding(ctx, userentity.NewOnboardingState(in.From)); err != nil {
		return Decision{}, fmt.Errorf("create onboarding: %w", err)
	}
	r.logger.Infow("new user", "phone", in.From)

	if isGreeting(text) {
		return reply(WelcomeGreeting), nil
	}
	return reply(WelcomeApology, Welcome), nil
}

func isEscalation(text string) bool {
	return containsAny(strings.ToLower(text), escalationPhrases)
}

func isGreeting(text string) bool {
	return containsAny(strings.ToLower(text), greetings)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
