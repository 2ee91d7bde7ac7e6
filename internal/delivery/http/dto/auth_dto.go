package dto

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm names the multipart fields of the registration request.
// File parts: "avatar" (single) and "kycDocuments" (repeated).
type RegisterForm struct {
	Email        string `form:"email"`
	Password     string `form:"password"`
	FullName     string `form:"fullName"`
	Address      string `form:"address"`
	CountryName  string `form:"countryName"`
	DocumentType string `form:"documentType"`
}
