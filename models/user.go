package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"size:255;not null"`
	Email           string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password        string         `json:"-" gorm:"size:255;not null"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"` // NULL 表示邮箱未验证
	IsAdmin         bool           `json:"is_admin" gorm:"default:false;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// IsEmailVerified 邮箱是否已验证
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
