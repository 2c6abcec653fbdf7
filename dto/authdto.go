package dto

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Username        string `json:"username"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
