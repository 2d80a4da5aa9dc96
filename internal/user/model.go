package user

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}

type Profile struct {
	UserID      string
	FullName    *string
	Phone       *string
	AvatarURL   *string
	DateOfBirth *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UpdateProfileParams struct {
	UserID      string
	FullName    *string
	Phone       *string
	AvatarURL   *string
	DateOfBirth *time.Time
}

// DeleteReport describes the outcome of an account deletion. Partial is set
// when some related data could not be removed.
type DeleteReport struct {
	Partial bool     `json:"partial"`
	Failed  []string `json:"failed,omitempty"`
}
