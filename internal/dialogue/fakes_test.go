package dialogue

import (
	"context"
	"sync"
	"time"

	chatentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint"
	complaintentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/oracle"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user"
	userentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// memUsers is an in-memory UserStore that counts writes.
type memUsers struct {
	mu         sync.Mutex
	users      map[string]*userentity.User
	onboarding map[string]*userentity.OnboardingState
	writes     int
	failFind   error
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*userentity.User{}, onboarding: map[string]*userentity.OnboardingState{}}
}

func (m *memUsers) FindByPhone(_ context.Context, phone string) (*userentity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFind != nil {
		return nil, m.failFind
	}
	u, ok := m.users[phone]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Create(_ context.Context, u *userentity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	cp := *u
	m.users[u.Phone] = &cp
	return nil
}

func (m *memUsers) Update(_ context.Context, phone string, p userentity.UserPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[phone]
	if !ok {
		return user.ErrUserNotFound
	}
	m.writes++
	if p.Name != nil {
		u.Name = p.Name
	}
	if p.ProfileName != nil {
		u.ProfileName = p.ProfileName
	}
	if p.Age != nil {
		u.Age = p.Age
	}
	if p.Gender != nil {
		u.Gender = p.Gender
	}
	return nil
}

func (m *memUsers) FindOnboarding(_ context.Context, phone string) (*userentity.OnboardingState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.onboarding[phone]
	if !ok {
		return nil, user.ErrOnboardingNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memUsers) CreateOnboarding(_ context.Context, o *userentity.OnboardingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	cp := *o
	m.onboarding[o.Phone] = &cp
	return nil
}

func (m *memUsers) UpdateOnboarding(_ context.Context, phone string, p userentity.OnboardingPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.onboarding[phone]
	if !ok {
		return user.ErrOnboardingNotFound
	}
	m.writes++
	o.HasProvidedName = o.HasProvidedName || p.HasProvidedName
	o.HasProvidedAge = o.HasProvidedAge || p.HasProvidedAge
	o.HasProvidedGender = o.HasProvidedGender || p.HasProvidedGender
	if p.CurrentStep != nil && p.CurrentStep.Rank() > o.CurrentStep.Rank() {
		o.CurrentStep = *p.CurrentStep
	}
	return nil
}

func (m *memUsers) completed(phone string, name string) {
	age := 30
	gender := userentity.GenderFemale
	m.users[phone] = &userentity.User{Phone: phone, Name: &name, Age: &age, Gender: &gender}
	m.onboarding[phone] = &userentity.OnboardingState{
		Phone: phone, HasProvidedName: true, HasProvidedAge: true, HasProvidedGender: true,
		CurrentStep: userentity.StepCompleted,
	}
}

// memComplaints keeps complaints newest first.
type memComplaints struct {
	mu     sync.Mutex
	byUser map[string][]*complaintentity.Complaint
	seq    int
	writes int
}

func newMemComplaints() *memComplaints {
	return &memComplaints{byUser: map[string][]*complaintentity.Complaint{}}
}

func (m *memComplaints) Create(_ context.Context, c *complaintentity.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.writes++
	cp := *c
	cp.CreatedAt = time.Unix(int64(m.seq), 0)
	m.byUser[c.Phone] = append([]*complaintentity.Complaint{&cp}, m.byUser[c.Phone]...)
	return nil
}

func (m *memComplaints) FindAllByPhone(_ context.Context, phone string, limit int) ([]*complaintentity.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.byUser[phone]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]*complaintentity.Complaint, len(all))
	for i, c := range all {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (m *memComplaints) UpdateLatest(_ context.Context, phone string, p complaintentity.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.byUser[phone]
	if len(all) == 0 {
		return complaint.ErrNotFound
	}
	m.writes++
	all[0].Complaint = p.Complaint
	all[0].Question = p.Question
	all[0].Status = p.Status
	return nil
}

func (m *memComplaints) latest(phone string) *complaintentity.Complaint {
	m.mu.Lock()
	defer m.mu.Unlock()
	if all := m.byUser[phone]; len(all) > 0 {
		return all[0]
	}
	return nil
}

// memChats keeps entries in append order.
type memChats struct {
	mu      sync.Mutex
	entries []*chatentity.Entry
	failOn  error
}

func (m *memChats) Append(_ context.Context, phone, body string, role chatentity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil {
		return m.failOn
	}
	m.entries = append(m.entries, &chatentity.Entry{Phone: phone, Message: body, Role: role})
	return nil
}

func (m *memChats) FindRecent(_ context.Context, phone string, limit int) ([]*chatentity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*chatentity.Entry
	for i := len(m.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if m.entries[i].Phone == phone {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func (m *memChats) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// scriptedOracle returns fixed answers and records what it was asked.
type scriptedOracle struct {
	mu           sync.Mutex
	category     oracle.Category
	classifyErr  error
	followUps    []string
	followUpErr  error
	generated    string
	generateErr  error
	vital        string
	histories    [][]*chatentity.Entry
	complaintCtx [][]string
}

func (o *scriptedOracle) Classify(_ context.Context, history []*chatentity.Entry, _ string) (oracle.Category, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.histories = append(o.histories, history)
	return o.category, o.classifyErr
}

func (o *scriptedOracle) Generate(_ context.Context, _ []*chatentity.Entry, _ string) (string, error) {
	return o.generated, o.generateErr
}

func (o *scriptedOracle) FollowUp(_ context.Context, complaints []string, _ string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.complaintCtx = append(o.complaintCtx, complaints)
	if o.followUpErr != nil {
		return "", o.followUpErr
	}
	if len(o.followUps) == 0 {
		return complaint.TerminationSentence, nil
	}
	q := o.followUps[0]
	o.followUps = o.followUps[1:]
	return q, nil
}

func (o *scriptedOracle) EvaluateVitalSign(_ context.Context, _ string) (string, error) {
	return o.vital, nil
}

// sent is one outbound message seen by the recording gateway.
type sent struct {
	To   string
	Text string
	Menu *message.InteractiveList
}

type recordingGateway struct {
	mu     sync.Mutex
	sent   []sent
	failAt int // 1-based send index to fail; 0 never fails
	err    error
}

func (g *recordingGateway) record(s sent) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, s)
	if g.failAt > 0 && len(g.sent) == g.failAt {
		return g.err
	}
	return nil
}

func (g *recordingGateway) SendText(_ context.Context, to, body string) error {
	return g.record(sent{To: to, Text: body})
}

func (g *recordingGateway) SendInteractiveList(_ context.Context, to string, list message.InteractiveList) error {
	return g.record(sent{To: to, Menu: &list})
}

func (g *recordingGateway) texts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []string
	for _, s := range g.sent {
		if s.Menu == nil {
			out = append(out, s.Text)
		}
	}
	return out
}
