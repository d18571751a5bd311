package models

import (
	"time"

	"gorm.io/gorm"
)

// 变更类型
const (
	// ChangeKindName 姓名变更
	ChangeKindName = "name_change"
	// ChangeKindEmail 邮箱变更
	ChangeKindEmail = "email_change"
)

// 变更请求状态，状态机: pending -> approved / pending -> denied，终态后不可再变
const (
	ChangeStatusPending  = "pending"
	ChangeStatusApproved = "approved"
	ChangeStatusDenied   = "denied"
)

// ChangeRequest 资料变更请求
// 用户对姓名/邮箱等敏感字段的修改不直接生效，而是生成一条待审核的
// 变更请求，由管理员批准后才应用到用户记录。
// 同一用户同一变更类型最多存在一条 pending 记录，重复提交时旧请求被替换。
type ChangeRequest struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index:idx_user_kind;not null"`
	Kind      string         `json:"kind" gorm:"size:20;index:idx_user_kind;not null"` // name_change/email_change
	OldValue  string         `json:"old_value" gorm:"size:255;not null"`
	NewValue  string         `json:"new_value" gorm:"size:255;not null"`
	Status    string         `json:"status" gorm:"size:20;default:pending;index"` // pending/approved/denied
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"user" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (ChangeRequest) TableName() string {
	return "change_requests"
}

// IsPending 是否待审核
func (r *ChangeRequest) IsPending() bool {
	return r.Status == ChangeStatusPending
}

// IsResolved 是否已进入终态
func (r *ChangeRequest) IsResolved() bool {
	return r.Status == ChangeStatusApproved || r.Status == ChangeStatusDenied
}
