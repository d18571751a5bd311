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

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct {
	validator *service.Validator
}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler(validator *service.Validator) *ExpenseHandler {
	return &ExpenseHandler{validator: validator}
}

// CreateExpenseRequest 创建支出记录请求
type CreateExpenseRequest struct {
	Amount   float64 `json:"amount" binding:"gte=0" example:"99.99"`
	Title    string  `json:"title" binding:"required" example:"Weekly groceries"`
	Category string  `json:"category" binding:"required" example:"Groceries"`
	Date     string  `json:"date" binding:"required" example:"2024-01-15"`
}

// ExpenseListRequest 支出记录列表请求
type ExpenseListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Category  string `form:"category" example:"Groceries"`
	StartTime string `form:"start_time" example:"2024-01-01"`
	EndTime   string `form:"end_time" example:"2024-12-31"`
}

// Create 创建支出记录
// @Summary 创建支出记录
// @Description 创建一条新的支出记录。金额不能为负，标题只能包含字母和空格，日期不能是未来时间，类别必须是后台维护的支出类别之一。
// @Tags 支出记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "支出记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.validator.ValidateTitle(req.Title); err != nil {
		BadRequest(c, err.Error())
		return
	}

	// 校验类别是否存在（来源于数据库）
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "类别不能为空")
		return
	}
	var cat models.ExpenseCategory
	if err := database.DB.Where("name = ?", req.Category).First(&cat).Error; err != nil {
		BadRequest(c, "无效的支出类别，请先在后台维护类别")
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	expense := models.Expense{
		UserID:   userID,
		Amount:   req.Amount,
		Title:    strings.TrimSpace(req.Title),
		Category: req.Category,
		Date:     date,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建支出记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", expense)
}

// List 获取支出记录列表
// @Summary 获取支出记录列表
// @Description 获取当前用户的支出记录列表，支持分页和筛选
// @Tags 支出记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category query string false "类别筛选"
// @Param start_time query string false "开始时间 (2024-01-01)"
// @Param end_time query string false "结束时间 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.StartTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartTime, time.Local); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndTime, time.Local); err == nil {
			// 包含结束日期当天
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, created_at DESC").Offset(offset).Limit(req.PageSize).Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     expenses,
	})
}

// Get 获取单条支出记录
// @Summary 获取单条支出记录
// @Tags 支出记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, expense)
}

// Update 更新支出记录
// @Summary 更新支出记录
// @Tags 支出记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出记录ID"
// @Param request body CreateExpenseRequest true "支出记录信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.validator.ValidateTitle(req.Title); err != nil {
		BadRequest(c, err.Error())
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	var cat models.ExpenseCategory
	if err := database.DB.Where("name = ?", req.Category).First(&cat).Error; err != nil {
		BadRequest(c, "无效的支出类别，请先在后台维护类别")
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{
		"amount":   req.Amount,
		"title":    strings.TrimSpace(req.Title),
		"category": req.Category,
		"date":     date,
	}
	if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	database.DB.First(&expense, expense.ID)
	SuccessWithMessage(c, "更新成功", expense)
}

// Delete 删除支出记录
// @Summary 删除支出记录
// @Tags 支出记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// GetCategories 获取支出类别列表
// @Summary 获取支出类别列表
// @Description 获取所有可用的支出类别，按排序值升序、ID升序排列
// @Tags 支出记录
// @Produce json
// @Success 200 {object} Response{data=[]models.ExpenseCategory} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	var list []models.ExpenseCategory
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
