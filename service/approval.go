package service

import (
	"errors"
	"strings"

	"budget/database"
	"budget/models"

	"gorm.io/gorm"
)

// 审批决定
const (
	DecisionApprove = "approve"
	DecisionDeny    = "deny"
)

// ApprovalService 资料变更审批工作流
// 姓名/邮箱属于敏感字段，用户的修改不直接写入用户表，而是生成
// 变更请求交由管理员审批，批准后才应用
type ApprovalService struct {
	validator *Validator
}

// NewApprovalService 创建审批工作流服务
func NewApprovalService(validator *Validator) *ApprovalService {
	return &ApprovalService{validator: validator}
}

// SubmitResult 提交资料修改的结果
type SubmitResult struct {
	// NameRequested 本次提交是否生成了姓名变更请求
	NameRequested bool `json:"name_requested"`
	// EmailRequested 本次提交是否生成了邮箱变更请求
	EmailRequested bool `json:"email_requested"`
}

// RequestCreated 是否产生了待审批的变更请求
func (r *SubmitResult) RequestCreated() bool {
	return r.NameRequested || r.EmailRequested
}

// SubmitProfileChange 提交资料修改
// 与当前值相同的字段不产生请求；发生变化的字段在同一事务内
// 先删除该用户同类型的 pending 请求再插入新请求（后提交覆盖先提交），
// 用户记录本身保持不变，等待管理员审批
func (s *ApprovalService) SubmitProfileChange(userID uint, name, email string) (*SubmitResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := s.validator.ValidateName(name); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEmail(email); err != nil {
		return nil, err
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 邮箱唯一性检查排除本人，避免提交原值时误报
	if email != user.Email {
		if err := s.validator.ValidateEmailUnique(email, userID); err != nil {
			return nil, err
		}
	}

	result := &SubmitResult{}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if name != user.Name {
			if err := replacePendingRequest(tx, user.ID, models.ChangeKindName, user.Name, name); err != nil {
				return err
			}
			result.NameRequested = true
		}
		if email != user.Email {
			if err := replacePendingRequest(tx, user.ID, models.ChangeKindEmail, user.Email, email); err != nil {
				return err
			}
			result.EmailRequested = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// replacePendingRequest 删除该用户同类型的 pending 请求并插入新请求
// 同一 (user, kind) 最多保留一条 pending，后提交的覆盖先提交的
func replacePendingRequest(tx *gorm.DB, userID uint, kind, oldValue, newValue string) error {
	if err := tx.Where("user_id = ? AND kind = ? AND status = ?",
		userID, kind, models.ChangeStatusPending).
		Delete(&models.ChangeRequest{}).Error; err != nil {
		return err
	}
	req := models.ChangeRequest{
		UserID:   userID,
		Kind:     kind,
		OldValue: oldValue,
		NewValue: newValue,
		Status:   models.ChangeStatusPending,
	}
	return tx.Create(&req).Error
}

// Resolve 管理员审批变更请求
// 批准时把请求中记录的新值应用到用户记录（邮箱变更同时清空验证时间，
// 强制重新验证），拒绝时用户记录不变；两种结果都使请求进入终态。
// 状态更新带 pending 条件作乐观守卫，两个管理员并发处理同一请求时
// 后到者会收到 ErrRequestResolved
func (s *ApprovalService) Resolve(requestID uint, decision string) (*models.ChangeRequest, error) {
	if decision != DecisionApprove && decision != DecisionDeny {
		return nil, ErrInvalidDecision
	}

	var req models.ChangeRequest
	if err := database.DB.First(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.IsResolved() {
		return nil, ErrRequestResolved
	}

	newStatus := models.ChangeStatusApproved
	if decision == DecisionDeny {
		newStatus = models.ChangeStatusDenied
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 仅当仍为 pending 时才允许流转到终态
		res := tx.Model(&models.ChangeRequest{}).
			Where("id = ? AND status = ?", requestID, models.ChangeStatusPending).
			Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestResolved
		}

		if decision != DecisionApprove {
			return nil
		}

		// 批准：应用请求中记录的新值
		switch req.Kind {
		case models.ChangeKindName:
			return tx.Model(&models.User{}).
				Where("id = ?", req.UserID).
				Update("name", req.NewValue).Error
		case models.ChangeKindEmail:
			return tx.Model(&models.User{}).
				Where("id = ?", req.UserID).
				Updates(map[string]interface{}{
					"email":             req.NewValue,
					"email_verified_at": nil, // 改绑后需要重新验证
				}).Error
		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	req.Status = newStatus
	return &req, nil
}
