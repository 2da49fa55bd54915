package entity

import "time"

// Step is the position of a user in the onboarding flow.
type Step string

const (
	StepAwaitingName   Step = "awaiting_name"
	StepAwaitingAge    Step = "awaiting_age"
	StepAwaitingGender Step = "awaiting_gender"
	StepCompleted      Step = "completed"
)

// Rank orders steps so transitions can be checked for monotonicity.
// Unknown steps rank below awaiting_name.
func (s Step) Rank() int {
	switch s {
	case StepAwaitingName:
		return 1
	case StepAwaitingAge:
		return 2
	case StepAwaitingGender:
		return 3
	case StepCompleted:
		return 4
	}
	return 0
}

// OnboardingState mirrors the `onboarding_states` table, one row per user.
// CurrentStep is completed iff all three Has* flags are true.
type OnboardingState struct {
	Phone             string    `db:"phone" json:"phone"`
	HasProvidedName   bool      `db:"has_provided_name" json:"has_provided_name"`
	HasProvidedAge    bool      `db:"has_provided_age" json:"has_provided_age"`
	HasProvidedGender bool      `db:"has_provided_gender" json:"has_provided_gender"`
	HasAgreedToTerms  bool      `db:"has_agreed_to_terms" json:"has_agreed_to_terms"`
	CurrentStep       Step      `db:"current_step" json:"current_step"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// NewOnboardingState returns the initial state for a freshly created user.
func NewOnboardingState(phone string) *OnboardingState {
	return &OnboardingState{Phone: phone, CurrentStep: StepAwaitingName}
}

// Completed reports whether onboarding is finished.
func (o *OnboardingState) Completed() bool {
	return o.CurrentStep == StepCompleted
}

// OnboardingPatch is a partial update. Flags can only be set, never cleared,
// and the repository refuses to move CurrentStep backwards.
type OnboardingPatch struct {
	HasProvidedName   bool
	HasProvidedAge    bool
	HasProvidedGender bool
	CurrentStep       *Step
}
