package models

import (
	"time"

	"gorm.io/gorm"
)

// Income 收入记录模型
type Income struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Amount    float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Source    string         `json:"source" gorm:"size:50;not null"` // 收入来源
	Date      time.Time      `json:"date" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Income) TableName() string {
	return "incomes"
}
