package models

// UserPatch lists fields to overwrite on a User. Nil fields are left as they
// are. The identity field is intentionally absent.
type UserPatch struct {
	Name              *string `json:"name,omitempty"`
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	Email             *string `json:"email,omitempty"`
	Role              *Role   `json:"role,omitempty"`
	Industry          *string `json:"industry,omitempty"`
	CreditScore       *int    `json:"creditScore,omitempty"`
	BusinessName      *string `json:"businessName,omitempty"`
	Location          *string `json:"location,omitempty"`
	YearsInBusiness   *int    `json:"yearsInBusiness,omitempty"`
	ApplicationStatus *string `json:"applicationStatus,omitempty"`
	JoinDate          *string `json:"joinDate,omitempty"`
	LastActivity      *string `json:"lastActivity,omitempty"`
}

// IsEmpty reports whether p changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p == UserPatch{}
}

// Apply returns u with every non-nil field of p written over it.
func (p UserPatch) Apply(u User) User {
	setString(&u.Name, p.Name)
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.Email, p.Email)
	if p.Role != nil {
		u.Role = *p.Role
	}
	setString(&u.Industry, p.Industry)
	setInt(&u.CreditScore, p.CreditScore)
	setString(&u.BusinessName, p.BusinessName)
	setString(&u.Location, p.Location)
	setInt(&u.YearsInBusiness, p.YearsInBusiness)
	setString(&u.ApplicationStatus, p.ApplicationStatus)
	setString(&u.JoinDate, p.JoinDate)
	setString(&u.LastActivity, p.LastActivity)
	return u
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
