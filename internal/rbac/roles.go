package rbac

// Role names. Keep these stable; they are part of the token contract.
// Regular accounts carry "user"; "admin" manages the shared catalogs
// (activities, exercises) that every account reads.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func IsAdmin(role string) bool { return role == RoleAdmin }
