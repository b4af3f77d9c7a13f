// types/token_pair.go
package types

// TokenPair is the credential pair issued at login. Both values are opaque to
// the client.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// LoginResult is the data payload of a successful login.
type LoginResult struct {
	TokenPair
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}
