package api

import (
	"errors"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 用户资料处理器
type ProfileHandler struct {
	approval *service.ApprovalService
}

// NewProfileHandler 创建用户资料处理器
func NewProfileHandler(approval *service.ApprovalService) *ProfileHandler {
	return &ProfileHandler{approval: approval}
}

// UpdateProfileRequest 资料修改请求
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required" example:"Alice Smith"`
	Email string `json:"email" binding:"required" example:"alice@gmail.com"`
}

// UpdateProfile 提交资料修改
// @Summary 提交资料修改
// @Description 姓名和邮箱为受保护字段，修改不会立即生效，而是生成待管理员审批的变更请求。与当前值相同的字段不产生请求；同一字段重复提交时，新请求覆盖旧的待审请求。
// @Tags 用户资料
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料信息"
// @Success 200 {object} Response{data=service.SubmitResult} "提交成功"
// @Failure 400 {object} Response "校验失败"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	result, err := h.approval.SubmitProfileChange(userID, req.Name, req.Email)
	if err != nil {
		if fe, ok := service.AsFieldError(err); ok {
			BadRequest(c, fe.Error())
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "提交失败"))
		return
	}

	if result.RequestCreated() {
		SuccessWithMessage(c, "修改已提交，待管理员审批", result)
		return
	}
	SuccessWithMessage(c, "资料无变化", result)
}

// GetMyChangeRequests 查询本人的变更请求
// @Summary 查询本人的变更请求
// @Description 按创建时间倒序返回当前用户的资料变更请求及审批状态
// @Tags 用户资料
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态筛选：pending/approved/denied"
// @Success 200 {object} Response{data=[]models.ChangeRequest} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/profile/change-requests [get]
func (h *ProfileHandler) GetMyChangeRequests(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Model(&models.ChangeRequest{}).Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.ChangeRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, requests)
}
