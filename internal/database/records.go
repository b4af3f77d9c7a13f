package database

import (
	"time"

	"github.com/princeprakhar/partnerhub/internal/models"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:30;not null"`
	Name         string `gorm:"size:50;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PhoneNumber  string `gorm:"uniqueIndex;size:20;not null"`
	PasswordHash string `gorm:"not null"`
	ImageURL     string
	Role         string `gorm:"size:20;default:user"`
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view returned by the identity endpoint.
func (u User) Profile() models.User {
	return models.User{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
	}
}

// ResetToken is a one-hour password reset grant. A user holds at most one.
type ResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:50;not null"`
}

func (c Category) Model() models.Category {
	return models.Category{ID: c.ID, Name: c.Name}
}

func categoryModels(cats []Category) []models.Category {
	out := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Model())
	}
	return out
}

// Store is the storefront of a user; an owner has at most one.
type Store struct {
	ID            uint   `gorm:"primaryKey"`
	OwnerID       uint   `gorm:"uniqueIndex;not null"`
	Name          string `gorm:"not null"`
	Description   string
	Address       string     `gorm:"not null"`
	PhoneNumber   string     `gorm:"size:20;not null"`
	AvailableTime string     `gorm:"not null"`
	Categories    []Category `gorm:"many2many:store_categories"`
	CreatedAt     time.Time
}

func (s Store) Model() models.Store {
	ids := make([]uint, 0, len(s.Categories))
	for _, c := range s.Categories {
		ids = append(ids, c.ID)
	}
	return models.Store{
		Name:          s.Name,
		Description:   s.Description,
		Address:       s.Address,
		PhoneNumber:   s.PhoneNumber,
		AvailableTime: s.AvailableTime,
		Categories:    ids,
	}
}

type Post struct {
	ID                    uint   `gorm:"primaryKey"`
	AuthorID              uint   `gorm:"index;not null"`
	Author                string `gorm:"not null"`
	Title                 string `gorm:"not null"`
	StoreName             string
	Description           string
	Address               string
	PhoneNumber           string `gorm:"size:20"`
	AvailableTime         string
	ExtraMessage          string
	StoreCategories       []Category `gorm:"many2many:post_store_categories"`
	PartnershipCategories []Category `gorm:"many2many:post_partnership_categories"`
	Images                []PostImage
	IsActive              bool `gorm:"index"`
	CreatedAt             time.Time
}

func (p Post) Model() models.Post {
	images := make([]models.PostImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, models.PostImage{
			ID:          img.ID,
			ImageURL:    img.ImageURL,
			IsThumbnail: img.IsThumbnail,
			CreatedAt:   img.CreatedAt,
		})
	}
	return models.Post{
		ID:                    p.ID,
		Title:                 p.Title,
		StoreName:             p.StoreName,
		Description:           p.Description,
		Address:               p.Address,
		PhoneNumber:           p.PhoneNumber,
		AvailableTime:         p.AvailableTime,
		StoreCategories:       categoryModels(p.StoreCategories),
		PartnershipCategories: categoryModels(p.PartnershipCategories),
		ExtraMessage:          p.ExtraMessage,
		Images:                images,
		Author:                p.Author,
		CreatedAt:             p.CreatedAt,
		IsActive:              p.IsActive,
	}
}

type PostImage struct {
	ID          uint   `gorm:"primaryKey"`
	PostID      uint   `gorm:"index;not null"`
	ImageURL    string `gorm:"not null"`
	IsThumbnail bool
	CreatedAt   time.Time
}

// PartnerRequest is unique per sender and post.
type PartnerRequest struct {
	ID        uint `gorm:"primaryKey"`
	SenderID  uint `gorm:"uniqueIndex:idx_partner_request_sender_post;not null"`
	PostID    uint `gorm:"uniqueIndex:idx_partner_request_sender_post;not null"`
	Message   string
	CreatedAt time.Time
}

type Notification struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"index;not null"`
	SenderID       uint
	SenderUsername string
	Message        string
	PostID         uint
	RequestMessage *string
	IsRead         bool `gorm:"index"`
	CreatedAt      time.Time
}

func (n Notification) Model() models.Notification {
	return models.Notification{
		ID:             n.ID,
		SenderUsername: n.SenderUsername,
		Message:        n.Message,
		Post:           n.PostID,
		RequestMessage: n.RequestMessage,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
