package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User uses the email address as the login identifier. The Password field
// holds the bcrypt hash and is never serialized.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Fullname    string             `bson:"fullname" json:"fullname"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsStaff     bool               `bson:"isStaff" json:"-"`
	IsSuperuser bool               `bson:"isSuperuser" json:"-"`
}

func NewUser(fullname, email, passwordHash string) User {
	return User{
		Fullname: fullname,
		Email:    email,
		Password: passwordHash,
		IsActive: true,
	}
}
