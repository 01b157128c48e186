package users

import (
	"time"

	"github.com/heva-credit/heva/internal/client/models"
)

// User is the dev backend's record of a registered account. The password
// from the registration payload is never kept.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      models.Role
	CreatedAt time.Time
}

// ToModel returns the wire shape the client stores in its roster.
func (u *User) ToModel() models.User {
	return models.User{
		ID:                u.ID,
		Name:              u.FirstName + " " + u.LastName,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Role:              u.Role,
		ApplicationStatus: "pending",
		JoinDate:          u.CreatedAt.Format(time.DateOnly),
	}
}
