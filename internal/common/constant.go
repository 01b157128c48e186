// Package common contains shared constants and sentinel errors used across
// HEVA client components.
package common

// Durable storage keys for the auth session.
const (
	// CurrentUserKey holds the JSON-encoded authenticated user.
	CurrentUserKey = "hevaUser"
	// RegisteredUsersKey holds the JSON-encoded roster of registered users.
	RegisteredUsersKey = "hevaRegisteredUsers"
)
