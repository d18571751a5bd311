package api

import (
	"errors"
	"strconv"
	"time"

	"budget/database"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 后台管理处理器
type AdminHandler struct {
	approval *service.ApprovalService
	stats    *service.StatsService
}

// NewAdminHandler 创建后台管理处理器
func NewAdminHandler(approval *service.ApprovalService, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{approval: approval, stats: stats}
}

// ListChangeRequests 获取变更请求列表
// @Summary 获取变更请求列表
// @Description 按创建时间倒序返回资料变更请求（含用户信息），支持状态筛选
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态筛选：pending/approved/denied"
// @Success 200 {object} Response{data=[]models.ChangeRequest} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "权限不足"
// @Router /admin/change-requests [get]
func (h *AdminHandler) ListChangeRequests(c *gin.Context) {
	query := database.DB.Model(&models.ChangeRequest{}).Preload("User")
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

// resolveChangeRequest 审批变更请求的公共路径
func (h *AdminHandler) resolveChangeRequest(c *gin.Context, decision string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	req, err := h.approval.Resolve(uint(id), decision)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			NotFound(c, "变更请求不存在")
		case errors.Is(err, service.ErrRequestResolved):
			BadRequest(c, "该请求已被处理")
		default:
			InternalError(c, SafeErrorMessage(err, "处理失败"))
		}
		return
	}

	if decision == service.DecisionApprove {
		SuccessWithMessage(c, "已批准", req)
		return
	}
	SuccessWithMessage(c, "已拒绝", req)
}

// ApproveChangeRequest 批准变更请求
// @Summary 批准变更请求
// @Description 把请求中记录的新值应用到用户记录。邮箱变更同时清空邮箱验证时间，用户需重新验证。已处理的请求不可重复审批。
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "变更请求ID"
// @Success 200 {object} Response{data=models.ChangeRequest} "批准成功"
// @Failure 400 {object} Response "请求已被处理"
// @Failure 404 {object} Response "变更请求不存在"
// @Router /admin/change-requests/{id}/approve [post]
func (h *AdminHandler) ApproveChangeRequest(c *gin.Context) {
	h.resolveChangeRequest(c, service.DecisionApprove)
}

// DenyChangeRequest 拒绝变更请求
// @Summary 拒绝变更请求
// @Description 标记请求为已拒绝，用户记录保持不变
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "变更请求ID"
// @Success 200 {object} Response{data=models.ChangeRequest} "拒绝成功"
// @Failure 400 {object} Response "请求已被处理"
// @Failure 404 {object} Response "变更请求不存在"
// @Router /admin/change-requests/{id}/deny [post]
func (h *AdminHandler) DenyChangeRequest(c *gin.Context) {
	h.resolveChangeRequest(c, service.DecisionDeny)
}

// AdminDashboardResponse 后台仪表盘数据
type AdminDashboardResponse struct {
	RecentRequests []models.ChangeRequest          `json:"recent_requests"` // 近24小时的变更请求
	UserGrowth     []service.MonthBucket           `json:"user_growth"`     // 近6个月按月注册用户数
	FinancialStats *service.PlatformFinancialStats `json:"financial_stats"`
}

// GetDashboard 获取后台仪表盘数据
// @Summary 获取后台仪表盘数据
// @Description 返回近24小时的变更请求、近6个月用户增长和平台财务统计
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=AdminDashboardResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "权限不足"
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	var recent []models.ChangeRequest
	if err := database.DB.Preload("User").
		Where("created_at > ?", time.Now().Add(-24*time.Hour)).
		Order("created_at DESC").
		Find(&recent).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	growth, err := h.stats.MonthlyUserGrowth(6)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	financial, err := h.stats.GetPlatformFinancialStats()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, AdminDashboardResponse{
		RecentRequests: recent,
		UserGrowth:     growth,
		FinancialStats: financial,
	})
}

// GetAllUsers 获取用户列表
// @Summary 获取用户列表
// @Description 分页返回平台用户
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} Response{data=PageResponse{list=[]models.User}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 403 {object} Response "权限不足"
// @Router /admin/users [get]
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	database.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := database.DB.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     users,
	})
}
