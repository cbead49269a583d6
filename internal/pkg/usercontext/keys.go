package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	KeyUserID    = "user_id"
	KeyUsername  = "username"
	KeyIsStaff   = "is_staff"
	KeyLoggedIn  = "logged_in"
	ContextLocal = "USER_CONTEXT"
)
