package models

// BuiltinUsers returns the fixed demo roster that is always available for
// login. A fresh slice is returned on every call.
func BuiltinUsers() []User {
	return []User{
		{
			ID:           "admin-1",
			Name:         "Admin User",
			Email:        "admin@heva.com",
			Role:         RoleAdmin,
			JoinDate:     "2023-01-15",
			LastActivity: "2024-01-15T10:30:00Z",
		},
		{
			ID:                "user-1",
			Name:              "Emma Rodriguez",
			Email:             "emma@example.com",
			Role:              RoleUser,
			Industry:          "Fashion",
			CreditScore:       742,
			BusinessName:      "Rodriguez Designs",
			Location:          "New York, NY",
			YearsInBusiness:   3,
			ApplicationStatus: "approved",
			JoinDate:          "2023-06-10",
			LastActivity:      "2024-01-14T15:45:00Z",
		},
	}
}

// FindUser returns the first user in rosters matching email and role.
// Rosters are searched in order.
func FindUser(email string, role Role, rosters ...[]User) (User, bool) {
	for _, roster := range rosters {
		for _, u := range roster {
			if u.Matches(email, role) {
				return u, true
			}
		}
	}
	return User{}, false
}

// IndexByID returns the position of the user with id in roster, or -1.
func IndexByID(roster []User, id string) int {
	for i, u := range roster {
		if u.ID == id {
			return i
		}
	}
	return -1
}
