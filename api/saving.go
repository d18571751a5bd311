package api

import (
	"strconv"
	"strings"
	"time"

	"budget/database"
	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// SavingHandler 储蓄目标处理器
type SavingHandler struct {
	validator *service.Validator
}

// NewSavingHandler 创建储蓄目标处理器
func NewSavingHandler(validator *service.Validator) *SavingHandler {
	return &SavingHandler{validator: validator}
}

// CreateSavingRequest 创建储蓄目标请求
type CreateSavingRequest struct {
	Name         string  `json:"name" binding:"required" example:"Emergency fund"`
	TargetAmount float64 `json:"target_amount" binding:"gte=0" example:"10000.00"`
	SavedAmount  float64 `json:"saved_amount" binding:"gte=0" example:"2500.00"`
	Deadline     string  `json:"deadline" binding:"required" example:"2025-12-31"`
	Description  string  `json:"description" example:"Six months of expenses"`
}

// UpdateSavingRequest 更新储蓄目标请求
// 更新时不再限制截止日期必须在未来，允许修正历史目标
type UpdateSavingRequest struct {
	Name         string   `json:"name" example:"Emergency fund"`
	TargetAmount *float64 `json:"target_amount" binding:"omitempty,gte=0" example:"10000.00"`
	SavedAmount  *float64 `json:"saved_amount" binding:"omitempty,gte=0" example:"2500.00"`
	Deadline     string   `json:"deadline" example:"2025-12-31"`
	Description  *string  `json:"description" example:"Six months of expenses"`
}

// SavingResponse 储蓄目标响应，附带推导的达成状态
type SavingResponse struct {
	models.Saving
	Completed bool `json:"completed"`
}

func toSavingResponse(s models.Saving) SavingResponse {
	return SavingResponse{Saving: s, Completed: s.IsCompleted()}
}

// Create 创建储蓄目标
// @Summary 创建储蓄目标
// @Description 创建储蓄目标。目标金额与已存金额不能为负，截止日期不能早于今天。
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSavingRequest true "储蓄目标信息"
// @Success 200 {object} Response{data=SavingResponse} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings [post]
func (h *SavingHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.validator.ValidateTitle(req.Name); err != nil {
		BadRequest(c, err.Error())
		return
	}

	deadline, err := time.ParseInLocation("2006-01-02", req.Deadline, time.Local)
	if err != nil {
		BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
		return
	}
	// 创建时截止日期不能早于今天
	today := time.Now()
	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	if deadline.Before(startOfToday) {
		BadRequest(c, "截止日期不能早于今天")
		return
	}

	saving := models.Saving{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
		Deadline:     deadline,
		Description:  req.Description,
	}

	if err := database.DB.Create(&saving).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建储蓄目标失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", toSavingResponse(saving))
}

// List 获取储蓄目标列表
// @Summary 获取储蓄目标列表
// @Description 获取当前用户的全部储蓄目标，附带推导的达成状态
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]SavingResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings [get]
func (h *SavingHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var savings []models.Saving
	if err := database.DB.Where("user_id = ?", userID).
		Order("deadline ASC").
		Find(&savings).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	list := make([]SavingResponse, 0, len(savings))
	for _, s := range savings {
		list = append(list, toSavingResponse(s))
	}
	Success(c, list)
}

// Get 获取单个储蓄目标
// @Summary 获取单个储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "储蓄目标ID"
// @Success 200 {object} Response{data=SavingResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/savings/{id} [get]
func (h *SavingHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var saving models.Saving
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&saving).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, toSavingResponse(saving))
}

// Update 更新储蓄目标
// @Summary 更新储蓄目标
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "储蓄目标ID"
// @Param request body UpdateSavingRequest true "储蓄目标信息"
// @Success 200 {object} Response{data=SavingResponse} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/savings/{id} [put]
func (h *SavingHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var saving models.Saving
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&saving).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		if err := h.validator.ValidateTitle(req.Name); err != nil {
			BadRequest(c, err.Error())
			return
		}
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.TargetAmount != nil {
		updates["target_amount"] = *req.TargetAmount
	}
	if req.SavedAmount != nil {
		updates["saved_amount"] = *req.SavedAmount
	}
	if req.Deadline != "" {
		deadline, err := time.ParseInLocation("2006-01-02", req.Deadline, time.Local)
		if err != nil {
			BadRequest(c, "截止日期格式错误，应为: 2006-01-02")
			return
		}
		updates["deadline"] = deadline
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&saving).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	database.DB.First(&saving, saving.ID)
	SuccessWithMessage(c, "更新成功", toSavingResponse(saving))
}

// Delete 删除储蓄目标
// @Summary 删除储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "储蓄目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/savings/{id} [delete]
func (h *SavingHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var saving models.Saving
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&saving).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&saving).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
