package model

type APIResponse struct {
	Message string       `json:"message"`
	Success bool         `json:"success"`
	NewUser *AccountView `json:"newUser,omitempty"`
	User    *AuthClaims  `json:"user,omitempty"`
}
