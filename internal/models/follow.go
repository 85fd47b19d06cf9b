package models

import (
	"time"
)

// Follow represents a directed follow edge between two accounts.
// The composite primary key makes the edge unique per direction.
type Follow struct {
	FollowerID int64     `gorm:"primaryKey;column:follower_id"`
	FolloweeID int64     `gorm:"primaryKey;column:followee_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower *Account `gorm:"foreignKey:FollowerID;references:ID"`
	Followee *Account `gorm:"foreignKey:FolloweeID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}
