package auth

// SignupRequest is the request body for creating an account.
// Validation messages follow the field names on the wire.
type SignupRequest struct {
	Name                 string `json:"name" validate:"required,notblank,min=2"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=7"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued on successful login
type LoginResponse struct {
	Token string `json:"token"`
}
