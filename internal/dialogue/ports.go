package dialogue

import (
	"context"

	chatentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
	complaintentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/oracle"
	userentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// UserStore persists users and their onboarding state. Lookups return
// user.ErrUserNotFound / user.ErrOnboardingNotFound when absent.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*userentity.User, error)
	Create(ctx context.Context, u *userentity.User) error
	Update(ctx context.Context, phone string, patch userentity.UserPatch) error
	FindOnboarding(ctx context.Context, phone string) (*userentity.OnboardingState, error)
	CreateOnboarding(ctx context.Context, o *userentity.OnboardingState) error
	UpdateOnboarding(ctx context.Context, phone string, patch userentity.OnboardingPatch) error
}

// ComplaintStore persists complaints. Only the latest one is ever mutated.
type ComplaintStore interface {
	Create(ctx context.Context, c *complaintentity.Complaint) error
	FindAllByPhone(ctx context.Context, phone string, limit int) ([]*complaintentity.Complaint, error)
	UpdateLatest(ctx context.Context, phone string, p complaintentity.Patch) error
}

// ChatLog is the append-only conversation history.
type ChatLog interface {
	Append(ctx context.Context, phone, body string, role chatentity.Role) error
	// FindRecent returns up to limit entries, newest first.
	FindRecent(ctx context.Context, phone string, limit int) ([]*chatentity.Entry, error)
}

// Oracle classifies and answers free text.
type Oracle interface {
	Classify(ctx context.Context, history []*chatentity.Entry, text string) (oracle.Category, error)
	Generate(ctx context.Context, history []*chatentity.Entry, text string) (string, error)
	FollowUp(ctx context.Context, complaints []string, text string) (string, error)
	EvaluateVitalSign(ctx context.Context, text string) (string, error)
}

// Gateway delivers outbound messages.
type Gateway interface {
	SendText(ctx context.Context, to, body string) error
	SendInteractiveList(ctx context.Context, to string, list message.InteractiveList) error
}
