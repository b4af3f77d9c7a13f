package models

// User is the identity-check payload. The client passes it through untouched.
type User struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	IsVerified  bool   `json:"is_verified"`
}
