package database

import "gorm.io/gorm"

// CreatePartnerRequest records the request and notifies the post's author in
// one transaction.
func (db *DB) CreatePartnerRequest(senderID, postID uint, message string) (PartnerRequest, error) {
	var req PartnerRequest
	err := db.conn.Transaction(func(tx *gorm.DB) error {
		var post Post
		if err := tx.Where("is_active = ?", true).First(&post, postID).Error; err != nil {
			return translate(err)
		}
		var sender User
		if err := tx.First(&sender, senderID).Error; err != nil {
			return translate(err)
		}

		var count int64
		if err := tx.Model(&PartnerRequest{}).Where("sender_id = ? AND post_id = ?", senderID, postID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}

		req = PartnerRequest{SenderID: senderID, PostID: postID, Message: message}
		if err := tx.Create(&req).Error; err != nil {
			return translate(err)
		}

		requestMessage := message
		return tx.Create(&Notification{
			UserID:         post.AuthorID,
			SenderID:       senderID,
			SenderUsername: sender.Name,
			Message:        message,
			PostID:         postID,
			RequestMessage: &requestMessage,
		}).Error
	})
	if err != nil {
		return PartnerRequest{}, err
	}
	return req, nil
}

// Notifications lists a user's notifications newest first.
func (db *DB) Notifications(userID uint) ([]Notification, error) {
	notes := []Notification{}
	err := db.conn.Where("user_id = ?", userID).Order("id DESC").Find(&notes).Error
	return notes, err
}

func (db *DB) UnreadCount(userID uint) (int, error) {
	var count int64
	err := db.conn.Model(&Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return int(count), err
}

// MarkRead flags a notification owned by userID as read.
func (db *DB) MarkRead(userID, id uint) error {
	res := db.conn.Model(&Notification{}).Where("id = ? AND user_id = ?", id, userID).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
