package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	userentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	agePattern  = regexp.MustCompile(`^\d{1,3}$`)
)

func validName(s string) bool {
	return namePattern.MatchString(s)
}

// parseAge accepts a 1-3 digit number in [0,120].
func parseAge(s string) (int, bool) {
	if !agePattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 120 {
		return 0, false
	}
	return n, true
}

// parseGender lower-cases s and checks it against the accepted set.
func parseGender(s string) (string, bool) {
	g := strings.ToLower(strings.TrimSpace(s))
	return g, userentity.ValidGender(g)
}
