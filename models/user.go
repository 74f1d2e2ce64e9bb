package models

import "time"

// User represents a registered account. Deleting a user cascades to all
// of their stored plans.
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Plans        []UserPlan `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
