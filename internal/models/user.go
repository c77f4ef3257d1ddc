package models

// Default identity values used when no user is logged in.
const (
	DefaultDepartment = "Student"

	GuestName  = "Guest"
	GuestEmail = "guest@example.com"

	AnonymousName  = "Anonymous"
	AnonymousEmail = "anonymous@example.com"
)

// User is the active identity of the local session. At most one record
// exists at a time; it is replaced wholesale on login or signup and
// removed on logout.
type User struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Guest returns the fixed fallback identity used where unauthenticated
// senders are permitted.
func Guest() User {
	return User{Name: GuestName, Email: GuestEmail, Department: DefaultDepartment}
}

// Anonymous returns the fallback author stamped on posts created
// without an active identity.
func Anonymous() User {
	return User{Name: AnonymousName, Email: AnonymousEmail, Department: DefaultDepartment}
}
