package entity

import "time"

// Role identifies who authored a chat log entry.
type Role string

const (
	RoleUser Role = "USER"
	RoleBot  Role = "BOT"
)

// Entry is one append-only row of the `chat_logs` table.
type Entry struct {
	ID        string    `db:"id" json:"id"`
	Phone     string    `db:"phone" json:"phone"`
	Message   string    `db:"message" json:"message"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
