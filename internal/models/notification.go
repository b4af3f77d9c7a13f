package models

import "time"

type Notification struct {
	ID             uint      `json:"id"`
	SenderUsername string    `json:"sender_username"`
	Message        string    `json:"message"`
	Post           uint      `json:"post"`
	RequestMessage *string   `json:"request_message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

type UnreadCount struct {
	UnreadCount int `json:"unread_count"`
}

// PartnerRequest is the body of a partner request and the echo the API returns.
type PartnerRequest struct {
	Post    uint   `json:"post"`
	Message string `json:"message"`
}
