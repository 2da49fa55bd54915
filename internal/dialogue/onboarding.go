package dialogue

import (
	"context"
	"fmt"

	userentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// onboard advances the onboarding flow by one answer. A rejected answer
// leaves the state untouched and returns the retry prompt. It returns nil
// only when onboarding is already complete.
func (r *Router) onboard(ctx context.Context, phone string, state *userentity.OnboardingState, text string) (*string, error) {
	var (
		patch userentity.UserPatch
		next  userentity.OnboardingPatch
		out   string
	)

	switch state.CurrentStep {
	case userentity.StepAwaitingName:
		if !validName(text) {
			return ptr(InvalidName), nil
		}
		patch.Name = &text
		next = userentity.OnboardingPatch{HasProvidedName: true, CurrentStep: step(userentity.StepAwaitingAge)}
		out = fmt.Sprintf(AskAge, text)
	case userentity.StepAwaitingAge:
		age, ok := parseAge(text)
		if !ok {
			return ptr(InvalidAge), nil
		}
		patch.Age = &age
		next = userentity.OnboardingPatch{HasProvidedAge: true, CurrentStep: step(userentity.StepAwaitingGender)}
		out = AskGender
	case userentity.StepAwaitingGender:
		gender, ok := parseGender(text)
		if !ok {
			return ptr(InvalidGender), nil
		}
		patch.Gender = &gender
		next = userentity.OnboardingPatch{HasProvidedGender: true, CurrentStep: step(userentity.StepCompleted)}
		out = OnboardingDone
	default:
		return nil, nil
	}

	if err := r.users.Update(ctx, phone, patch); err != nil {
		return nil, fmt.Errorf("save onboarding answer: %w", err)
	}
	if err := r.users.UpdateOnboarding(ctx, phone, next); err != nil {
		return nil, fmt.Errorf("advance onboarding: %w", err)
	}
	r.logger.Infow("onboarding advanced", "phone", phone, "from", state.CurrentStep, "to", *next.CurrentStep)
	return &out, nil
}

func step(s userentity.Step) *userentity.Step { return &s }

func ptr(s string) *string { return &s }
