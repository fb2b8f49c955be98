package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session identifies the authenticated caller of a single request. It is
// passed explicitly to every operation that needs it; nothing reads
// ambient global auth state.
type Session struct {
	UserID int64
	Role   Role
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
