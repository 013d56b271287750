package user

// User mirrors the backend's staff account representation.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"is_active"`
	CreatedAt *string `json:"created_at"`
	LastLogin *string `json:"last_login"`
}

// CreatePayload is the request body for new accounts. The password only
// travels on create; it never comes back in a User.
type CreatePayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePayload is the request body for account edits.
type UpdatePayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// PasswordChange is the request body for the signed-in user's password
// change.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
