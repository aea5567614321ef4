package domain

import "errors"

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleContractor Role = "Contractor"
	RoleManager    Role = "Manager"
	RoleSuperAdmin Role = "Super Admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an actor in the system. Only contractors carry the billing
// fields (HourlyRate, ManagerID, ClientID, ServiceTitle).
type User struct {
	ID           int     `json:"id" bson:"_id"`
	Name         string  `json:"name" bson:"name"`
	Role         Role    `json:"role" bson:"role"`
	Company      string  `json:"company" bson:"company"`
	HourlyRate   float64 `json:"hourly_rate,omitempty" bson:"hourly_rate,omitempty"`
	ManagerID    int     `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	ClientID     int     `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Email        string  `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string  `json:"phone,omitempty" bson:"phone,omitempty"`
	ServiceTitle string  `json:"service_title,omitempty" bson:"service_title,omitempty"`
	PasswordHash string  `json:"-" bson:"password_hash,omitempty"`
}
