package database

import (
	"time"

	"gorm.io/gorm"
)

// UserConflicts returns the unique fields of u already taken by another user.
func (db *DB) UserConflicts(u User) ([]string, error) {
	checks := []struct {
		field string
		query string
		value string
	}{
		{"username", "username = ?", u.Username},
		{"email", "LOWER(email) = LOWER(?)", u.Email},
		{"phone_number", "phone_number = ?", u.PhoneNumber},
	}

	var taken []string
	for _, check := range checks {
		var count int64
		if err := db.conn.Model(&User{}).Where(check.query, check.value).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			taken = append(taken, check.field)
		}
	}
	return taken, nil
}

func (db *DB) CreateUser(u User) (User, error) {
	if u.Role == "" {
		u.Role = "user"
	}
	if err := db.conn.Create(&u).Error; err != nil {
		return User{}, translate(err)
	}
	return u, nil
}

func (db *DB) UserByID(id uint) (User, error) {
	var u User
	err := db.conn.First(&u, id).Error
	return u, translate(err)
}

func (db *DB) UserByUsername(username string) (User, error) {
	var u User
	err := db.conn.Where("username = ?", username).First(&u).Error
	return u, translate(err)
}

func (db *DB) UserByEmail(email string) (User, error) {
	var u User
	err := db.conn.Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return u, translate(err)
}

func (db *DB) UserByEmailAndPhone(email, phone string) (User, error) {
	var u User
	err := db.conn.Where("LOWER(email) = LOWER(?) AND phone_number = ?", email, phone).First(&u).Error
	return u, translate(err)
}

func (db *DB) SetPassword(userID uint, hash string) error {
	res := db.conn.Model(&User{}).Where("id = ?", userID).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveResetToken replaces any token previously issued to the same user.
func (db *DB) SaveResetToken(t ResetToken) error {
	return db.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", t.UserID).Delete(&ResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&t).Error
	})
}

// ResetToken returns the unexpired token issued to userID.
func (db *DB) ResetToken(userID uint, token string) (ResetToken, error) {
	var t ResetToken
	if err := db.conn.Where("user_id = ? AND token = ?", userID, token).First(&t).Error; err != nil {
		return ResetToken{}, translate(err)
	}
	if time.Now().After(t.ExpiresAt) {
		return ResetToken{}, ErrNotFound
	}
	return t, nil
}

func (db *DB) DeleteResetToken(token string) error {
	return db.conn.Where("token = ?", token).Delete(&ResetToken{}).Error
}
