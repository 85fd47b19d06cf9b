package models

import (
	"time"
)

// Post represents a single piece of content owned by one account
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID int64     `gorm:"not null;index:posts_account_ix;column:account_id"`
	Body      string    `gorm:"type:text;not null;column:body"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID;references:ID"`
	Images  []Image  `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// Image is an image record owned by a post. It carries the storage
// reference only, never pixel bytes.
type Image struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     int64  `gorm:"not null;index:images_post_ix;column:post_id"`
	StorageRef string `gorm:"type:varchar(1024);not null;column:storage_ref"`
	Position   int    `gorm:"not null;default:0;column:position"`
}

// TableName specifies the table name for Image
func (Image) TableName() string {
	return "images"
}
