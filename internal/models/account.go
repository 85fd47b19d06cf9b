package models

import (
	"time"
)

// Account represents a registered account
type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Handle    string    `gorm:"type:varchar(32);not null;uniqueIndex:accounts_handle_ux;column:handle"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:accounts_email_ux;column:email"`
	Activated bool      `gorm:"not null;default:true;column:activated"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`

	// Profile fields
	DisplayName string `gorm:"type:varchar(64);not null;default:'';column:display_name"`
	Bio         string `gorm:"type:varchar(500);not null;default:'';column:bio"`
	AvatarRef   string `gorm:"type:varchar(1024);not null;default:'';column:avatar_ref"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// AccountSummary is the read projection of an account used in listings and feeds
type AccountSummary struct {
	ID          int64  `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarRef   string `json:"avatar_ref"`
}

// Summary builds the read projection for an account
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:          a.ID,
		Handle:      a.Handle,
		DisplayName: a.DisplayName,
		AvatarRef:   a.AvatarRef,
	}
}
