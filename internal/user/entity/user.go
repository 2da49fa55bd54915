package entity

import "time"

// Gender values accepted for a user. Stored lower-cased.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User represents a row in the `users` table, keyed by the sender's phone identifier.
// Optional attributes are pointers; nil means the user never provided them.
type User struct {
	Phone       string    `db:"phone" json:"phone"`
	Name        *string   `db:"name" json:"name,omitempty"`
	ProfileName *string   `db:"profile_name" json:"profile_name,omitempty"`
	Gender      *string   `db:"gender" json:"gender,omitempty"`
	Age         *int      `db:"age" json:"age,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// UserPatch carries a partial update; only non-nil fields are written.
type UserPatch struct {
	Name        *string
	ProfileName *string
	Gender      *string
	Age         *int
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.ProfileName == nil && p.Gender == nil && p.Age == nil
}

// ValidGender reports whether g (already lower-cased) is an accepted gender.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
