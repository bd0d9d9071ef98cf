// File: internal/model/user.go
package model

import "time"

type User struct {
	ID             int        `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	OtherName      *string    `db:"other_name" json:"other_name,omitempty"`
	Email          string     `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	Birthday       *time.Time `db:"birthday" json:"birthday,omitempty"`
	City           *string    `db:"city" json:"city,omitempty"`
	AdditionalInfo *string    `db:"additional_info" json:"additional_info,omitempty"`
	IsAdmin        bool       `db:"is_admin" json:"is_admin"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
