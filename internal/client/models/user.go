// Package models defines the user records handled by the auth session.
package models

import (
	"encoding/json"
	"errors"
)

// Role classifies what a user may access.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var ErrUnknownRole = errors.New("role must be admin or user")

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// User is an identity record. ID is assigned by the server (or fixed for
// built-in records) and is never generated on the client.
type User struct {
	ID                string `json:"id"`
	Name              string `json:"name,omitempty"`
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Email             string `json:"email"`
	Role              Role   `json:"role"`
	Industry          string `json:"industry,omitempty"`
	CreditScore       int    `json:"creditScore,omitempty"`
	BusinessName      string `json:"businessName,omitempty"`
	Location          string `json:"location,omitempty"`
	YearsInBusiness   int    `json:"yearsInBusiness,omitempty"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
	JoinDate          string `json:"joinDate,omitempty"`
	LastActivity      string `json:"lastActivity,omitempty"`
}

// DisplayName prefers Name, falling back to "FirstName LastName".
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.LastName
}

// Matches reports whether u is the login candidate for email and role.
// Comparison is exact and case-sensitive.
func (u User) Matches(email string, role Role) bool {
	return u.Email == email && u.Role == role
}

// MarshalUser encodes u the same way every time, so the stored bytes can be
// compared with the in-memory record.
func MarshalUser(u User) ([]byte, error) {
	return json.Marshal(u)
}

// UnmarshalUser decodes a stored record. Records without an id are rejected.
func UnmarshalUser(b []byte) (User, error) {
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return User{}, err
	}
	if u.ID == "" {
		return User{}, errors.New("user record has no id")
	}
	return u, nil
}

// MarshalRoster encodes an ordered list of users.
func MarshalRoster(users []User) ([]byte, error) {
	if users == nil {
		users = []User{}
	}
	return json.Marshal(users)
}

// UnmarshalRoster decodes an ordered list of users.
func UnmarshalRoster(b []byte) ([]User, error) {
	var users []User
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RegisterData is the payload sent to the registration endpoint.
type RegisterData struct {
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,emailfmt"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      Role   `json:"role" validate:"required,oneof=admin user"`
}
