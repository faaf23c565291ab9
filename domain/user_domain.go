package domain

import "time"

var (
	MessageSuccessRegister          = "User created successfully"
	MessageSuccessLogin             = "Login successful"
	MessageSuccessGetProfile        = "success get profile"
	MessageSuccessChangeUsername    = "Username updated successfully"
	MessageSuccessChangeEmail       = "Email updated successfully"
	MessageSuccessChangePassword    = "Password updated successfully"
	MessageSuccessPromoteAdmin      = "Security key accepted, you are now an administrator"
	MessageSuccessUpdateRestriction = "Dietary restrictions updated successfully"
	MessageSuccessDeleteAccount     = "Account deleted successfully"

	MessageFailedRegister          = "An error occurred during signup"
	MessageFailedLogin             = "Login failed"
	MessageFailedGetProfile        = "failed to get profile"
	MessageFailedChangeUsername    = "failed to update username"
	MessageFailedChangeEmail       = "failed to update email"
	MessageFailedChangePassword    = "failed to update password"
	MessageFailedPromoteAdmin      = "failed to update security key"
	MessageFailedUpdateRestriction = "failed to update dietary restrictions"
	MessageFailedDeleteAccount     = "failed to delete account"

	ErrDuplicateAccount   = NewError(ErrConflict, "Username or email already exists")
	ErrUsernameTaken      = NewError(ErrConflict, "username already exists")
	ErrEmailTaken         = NewError(ErrConflict, "email already exists")
	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid username or password")
	ErrWrongPassword      = NewError(ErrUnauthorized, "current password is incorrect")
	ErrInvalidSecurityKey = NewError(ErrBadRequest, "invalid security key")
	ErrAccountNotFound    = NewError(ErrNotFound, "account not found")
	ErrInvalidRestriction = NewError(ErrValidation, "invalid dietary restriction")
)

type (
	SignupRequest struct {
		Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required,min=6"`
	}

	SignupResponse struct {
		AccountID string `json:"account_id"`
	}

	LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	// Session is the result of a successful login. IsAdmin is resolved at
	// login time and is not re-checked on later requests.
	Session struct {
		AccountID string `json:"account_id"`
		IsAdmin   bool   `json:"is_admin"`
		Token     string `json:"-"`
	}

	ChangeUsernameRequest struct {
		NewUsername string `json:"new_username" form:"new_username" validate:"required,min=3,max=50"`
	}

	ChangeEmailRequest struct {
		NewEmail string `json:"new_email" form:"new_email" validate:"required,email"`
	}

	ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=6"`
	}

	SecurityKeyRequest struct {
		SecurityKey string `json:"security_key" form:"security_key" validate:"required"`
	}

	DietRestrictionsRequest struct {
		Restrictions []string `json:"restrictions" form:"restrictions" validate:"dive,dietary_restriction"`
	}

	Profile struct {
		ID           string    `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		IsAdmin      bool      `json:"is_admin"`
		Restrictions []string  `json:"restrictions"`
		AllTags      []string  `json:"all_tags"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
