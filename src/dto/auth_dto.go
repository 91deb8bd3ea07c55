package dto

type SignupRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8,maxbytes=72"`
	ConfirmPassword string   `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	Bio             string   `json:"bio" validate:"max=500"`
	SelectedTags    []string `json:"selectedTags"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
