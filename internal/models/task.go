package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	StatusToDo       = "to-do"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the task status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the task priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task belongs to exactly one board. OwnerID is the creator, which matters
// only for delete permission. AssigneeID and ReviewerID are empty when unset
// and must reference board members when set.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoardID     string             `bson:"board_id" json:"board"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	OwnerID     string             `bson:"owner_id" json:"-"`
	AssigneeID  string             `bson:"assignee_id,omitempty" json:"-"`
	ReviewerID  string             `bson:"reviewer_id,omitempty" json:"-"`
	DueDate     string             `bson:"due_date,omitempty" json:"due_date,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
