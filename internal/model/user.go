// internal/model/user.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExternalID    string     `gorm:"type:text;uniqueIndex;not null" json:"-"`
	Email         string     `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	DisplayName   string     `gorm:"type:text;not null;default:''" json:"display_name"`
	AvatarURL     *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	Phone         *string    `gorm:"type:text" json:"phone,omitempty"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// EmailDomain returns the lowercased domain part of the user's email.
func (u *User) EmailDomain() string {
	return EmailDomain(u.Email)
}

// EmailDomain returns the lowercased part after the last "@", or "" when the
// address has none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
