package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Board groups tasks and the set of users allowed to see them. The owner is
// appended to Members on creation but access checks treat owner and member
// independently.
type Board struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	OwnerID string             `bson:"owner_id" json:"owner_id"`
	Members []string           `bson:"members" json:"members"`
}

// HasMember reports whether the given user id is in the member set.
func (b *Board) HasMember(userID string) bool {
	for _, m := range b.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// AddMember appends userID unless it is already present.
func (b *Board) AddMember(userID string) {
	if !b.HasMember(userID) {
		b.Members = append(b.Members, userID)
	}
}
