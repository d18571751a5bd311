package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceComparison 比价记录
// 同类商品在不同商家的价格对比，is_best_deal 标记当前最优价
type PriceComparison struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Product    string         `json:"product" gorm:"size:255;not null;index"`
	Store      string         `json:"store" gorm:"size:100;not null"`
	Category   string         `json:"category" gorm:"size:50;not null"`
	Price      float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	IsBestDeal bool           `json:"is_best_deal" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (PriceComparison) TableName() string {
	return "price_comparisons"
}
