package models

import "time"

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PostImage struct {
	ID          uint      `json:"id"`
	ImageURL    string    `json:"image_url"`
	IsThumbnail bool      `json:"is_thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post is a partnership listing as returned by the list and detail endpoints.
type Post struct {
	ID                    uint        `json:"id"`
	Title                 string      `json:"title"`
	StoreName             string      `json:"store_name"`
	Description           string      `json:"description"`
	Address               string      `json:"address"`
	PhoneNumber           string      `json:"phone_number"`
	AvailableTime         string      `json:"available_time"`
	StoreCategories       []Category  `json:"store_categories"`
	PartnershipCategories []Category  `json:"partnership_categories"`
	ExtraMessage          string      `json:"extra_message"`
	Images                []PostImage `json:"images"`
	Author                string      `json:"author"`
	CreatedAt             time.Time   `json:"created_at"`
	IsActive              bool        `json:"is_active"`
}

// Thumbnail returns the thumbnail image URL, falling back to the first image.
func (p Post) Thumbnail() string {
	for _, img := range p.Images {
		if img.IsThumbnail {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return ""
}

// PostSummary is the short form returned by the "my posts" endpoint.
type PostSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadTarget is a pre-signed upload URL plus the public URL the object will
// have once uploaded.
type UploadTarget struct {
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}
