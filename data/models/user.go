package models

import "time"

// User is an account record. Passwords are stored as bcrypt hashes, never
// plaintext. New accounts start inactive until the activation link is
// followed.
type User struct {
	ID          int64     `json:"id" db:"id" readOnly:"true"`
	Username    string    `validate:"required,min=3,max=150" json:"username" db:"username"`
	Email       string    `validate:"required,email" json:"email" db:"email"`
	Password    string    `json:"-" db:"password"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsSuperuser bool      `json:"is_superuser" db:"is_superuser"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" readOnly:"true"`
}

func (User) TableName() string {
	return "users"
}

func (u User) GetID() int64 {
	return u.ID
}

func (u User) EmptySlice() interface{} {
	return &[]User{}
}
