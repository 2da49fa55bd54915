package entity

import "time"

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
)

// Terminal reports whether no further follow-up happens in this status.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Complaint is a row of the `complaints` table. A phone identifier may own many;
// only the most recent one is ever read or mutated by the dialogue.
type Complaint struct {
	ID         string    `db:"id" json:"id"`
	Phone      string    `db:"phone" json:"phone"`
	Complaint  string    `db:"complaint" json:"complaint"`
	Question   string    `db:"question" json:"question"`
	Status     Status    `db:"status" json:"status"`
	Severity   *string   `db:"severity" json:"severity,omitempty"`
	Resolution *string   `db:"resolution" json:"resolution,omitempty"`
	ResolvedBy *string   `db:"resolved_by" json:"resolved_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Patch overwrites the latest complaint's text, question and status.
type Patch struct {
	Complaint string
	Question  string
	Status    Status
}
