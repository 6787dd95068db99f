package domain

import "time"

type Role int

const (
	RoleAdmin Role = 0
	RoleUser  Role = 1
)

type User struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username,omitempty"`
	PassHash     string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Address      string    `json:"address,omitempty"`
	Occupation   string    `json:"occupation,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	IsLocked     bool      `json:"isLocked"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Admin() bool {
	return u.Role == RoleAdmin
}

type Credentials struct {
	Email    string
	Password string
}
