package models

import (
	"time"

	"gorm.io/gorm"
)

// Saving 储蓄目标模型
// 是否达成不落库，由 saved_amount >= target_amount 实时推导
type Saving struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	TargetAmount float64        `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	SavedAmount  float64        `json:"saved_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Deadline     time.Time      `json:"deadline" gorm:"not null"`
	Description  string         `json:"description" gorm:"size:255"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Saving) TableName() string {
	return "savings"
}

// IsCompleted 储蓄目标是否已达成
func (s *Saving) IsCompleted() bool {
	return s.SavedAmount >= s.TargetAmount
}
