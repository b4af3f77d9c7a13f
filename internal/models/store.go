package models

// Store is the storefront owned by a user. Categories holds category ids.
type Store struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phone_number"`
	AvailableTime string `json:"available_time"`
	Categories    []uint `json:"categories"`
}
