package models

type Role string

const (
	Student Role = "student"
	Teacher Role = "teacher"
	Admin   Role = "admin"
)

type User struct {
	ID   int64
	NIS  string
	Name string
	Role Role
	// Class is set for students only; teachers and admins carry NULL.
	Class *string
}

// ClassLabel is what reports print in the Kelas/Peran column.
func (u User) ClassLabel() string {
	if u.Role == Student && u.Class != nil {
		return *u.Class
	}
	return "Guru"
}
