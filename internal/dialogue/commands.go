package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user"
	userentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

// command dispatches on the lower-cased first word. Arguments keep their case.
func (r *Router) command(ctx context.Context, phone, text string) (Decision, error) {
	fields := strings.Fields(text)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "/help":
		return reply(HelpText), nil
	case "/check-bmi":
		return reply(CheckBMIText), nil
	case "/settings":
		return r.settings(ctx, phone, args)
	case "/profile":
		return r.profile(ctx, phone)
	default:
		r.logger.Debugw("unknown command", "phone", phone, "command", name)
		return reply(UnknownCommand), nil
	}
}

func (r *Router) profile(ctx context.Context, phone string) (Decision, error) {
	u, err := r.users.FindByPhone(ctx, phone)
	if errors.Is(err, user.ErrUserNotFound) {
		return reply(NoProfile), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("find user: %w", err)
	}
	return reply(RenderProfile(u)), nil
}

// RenderProfile lists every known field of u, using NotSet for absent ones.
func RenderProfile(u *userentity.User) string {
	age := NotSet
	if u.Age != nil {
		age = strconv.Itoa(*u.Age)
	}
	var b strings.Builder
	b.WriteString("Here is your profile:\n")
	fmt.Fprintf(&b, "Name: %s\n", orNotSet(u.Name))
	fmt.Fprintf(&b, "WhatsApp name: %s\n", orNotSet(u.ProfileName))
	fmt.Fprintf(&b, "Age: %s\n", age)
	fmt.Fprintf(&b, "Gender: %s\n", capitalize(orNotSet(u.Gender)))
	fmt.Fprintf(&b, "Phone: +%s", strings.TrimPrefix(u.Phone, "+"))
	return b.String()
}

func (r *Router) settings(ctx context.Context, phone string, args []string) (Decision, error) {
	if len(args) < 2 {
		return reply(SettingsUsage), nil
	}
	field := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")

	var (
		patch   userentity.UserPatch
		display string
		invalid string
	)
	switch field {
	case "name":
		if validName(value) {
			patch.Name, display = &value, value
		} else {
			invalid = InvalidName
		}
	case "age":
		if age, ok := parseAge(value); ok {
			patch.Age, display = &age, strconv.Itoa(age)
		} else {
			invalid = InvalidAge
		}
	case "gender":
		if g, ok := parseGender(value); ok {
			patch.Gender, display = &g, g
		} else {
			invalid = InvalidGender
		}
	default:
		return reply(SettingsUsage), nil
	}
	if invalid != "" {
		return reply(invalid), nil
	}

	err := r.users.Update(ctx, phone, patch)
	if errors.Is(err, user.ErrUserNotFound) {
		return reply(NoProfile), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("update settings: %w", err)
	}
	r.logger.Infow("settings updated", "phone", phone, "field", field)
	return reply(fmt.Sprintf(SettingsUpdated, field, display)), nil
}

func orNotSet(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return NotSet
	}
	return *s
}

func capitalize(s string) string {
	if s == "" || s == NotSet {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
