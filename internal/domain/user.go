package domain

// Role capability carried by an authenticated identity
type Role string

const (
	RoleGuest     Role = "guest"
	RoleHost      Role = "host"
	RoleSuperuser Role = "superuser"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleSuperuser:
		return true
	}
	return false
}

// Identity authenticated caller of an operation
type Identity struct {
	UserID int64
	Role   Role
}

// IsSuperuser returns true for administrators
func (i Identity) IsSuperuser() bool {
	return i.Role == RoleSuperuser
}

// UserSummary public data of a user shown next to bookings
type UserSummary struct {
	ID       int64
	Username string
	Email    string
}
