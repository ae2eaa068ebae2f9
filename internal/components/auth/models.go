package auth

type (
	// Credentials exist only for the duration of a single Login call.
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"-"` // Never serialize the password
	}

	// Result is the success-channel outcome of a login attempt. Token and
	// Error are empty when absent.
	Result struct {
		Success bool   `json:"success"`
		Token   string `json:"token,omitempty"`
		Error   string `json:"error,omitempty"`
	}
)
