package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered forum member.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"      validate:"required"`
	UserName  string        `bson:"userName"  validate:"required"`
	Email     string        `bson:"email"     validate:"required"`
	Password  string        `bson:"password"  validate:"required"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

// Normalize trims the string fields that are stored trimmed.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.UserName = strings.TrimSpace(u.UserName)
	u.Email = strings.TrimSpace(u.Email)
}
