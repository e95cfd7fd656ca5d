package models

// Role is the closed set of account roles. The API accepts exactly the
// two literals below; anything else is rejected at validation.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}
