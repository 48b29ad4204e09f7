package enums

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleCoach  Role = "coach"
	RoleParent Role = "parent"
)

// IsAdmin reports whether the role grants the administrative dashboard.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
