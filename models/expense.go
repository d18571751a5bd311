package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 支出记录模型
type Expense struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Amount    float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Category  string         `json:"category" gorm:"size:50;not null;index"`
	Date      time.Time      `json:"date" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// 默认支出类别常量
const (
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transport"
	CategoryHousing       = "Housing"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryMedical       = "Medical"
	CategoryEducation     = "Education"
	CategoryOther         = "Other"
)

// GetDefaultCategories 获取默认支出类别
func GetDefaultCategories() []string {
	return []string{
		CategoryGroceries,
		CategoryTransport,
		CategoryHousing,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryMedical,
		CategoryEducation,
		CategoryOther,
	}
}
