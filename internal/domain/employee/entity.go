package employee

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type Employee struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
