package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is owned by its task and cascade-deleted with it. AuthorID becomes
// empty if the author account is ever removed; the comment itself stays.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    string             `bson:"task_id" json:"-"`
	AuthorID  string             `bson:"author_id,omitempty" json:"-"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
