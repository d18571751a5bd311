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

// IncomeHandler 收入记录处理器
type IncomeHandler struct {
	validator *service.Validator
}

// NewIncomeHandler 创建收入记录处理器
func NewIncomeHandler(validator *service.Validator) *IncomeHandler {
	return &IncomeHandler{validator: validator}
}

// CreateIncomeRequest 创建收入记录请求
type CreateIncomeRequest struct {
	Amount float64 `json:"amount" binding:"gte=0" example:"5000.00"`
	Title  string  `json:"title" binding:"required" example:"Monthly salary"`
	Source string  `json:"source" binding:"required" example:"Salary"`
	Date   string  `json:"date" binding:"required" example:"2024-01-15"`
}

// IncomeListRequest 收入记录列表请求
type IncomeListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Source    string `form:"source" example:"Salary"`
	StartTime string `form:"start_time" example:"2024-01-01"`
	EndTime   string `form:"end_time" example:"2024-12-31"`
}

// parseTransactionDate 解析收支日期并校验不在未来
func parseTransactionDate(dateStr string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, service.NewFieldError("date", "日期格式错误，应为: 2006-01-02")
	}
	// 当天有效，明天开始算未来
	today := time.Now()
	endOfToday := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.Local)
	if date.After(endOfToday) {
		return time.Time{}, service.NewFieldError("date", "日期不能是未来时间")
	}
	return date, nil
}

// Create 创建收入记录
// @Summary 创建收入记录
// @Description 创建一条新的收入记录。金额不能为负，标题只能包含字母和空格，日期不能是未来时间，来源必须是后台维护的收入来源之一。
// @Tags 收入记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入记录信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.validator.ValidateTitle(req.Title); err != nil {
		BadRequest(c, err.Error())
		return
	}

	// 校验来源是否存在（来源于数据库）
	req.Source = strings.TrimSpace(req.Source)
	if req.Source == "" {
		BadRequest(c, "来源不能为空")
		return
	}
	var source models.IncomeSource
	if err := database.DB.Where("name = ?", req.Source).First(&source).Error; err != nil {
		BadRequest(c, "无效的收入来源，请先在后台维护来源")
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	income := models.Income{
		UserID: userID,
		Amount: req.Amount,
		Title:  strings.TrimSpace(req.Title),
		Source: req.Source,
		Date:   date,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建收入记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", income)
}

// List 获取收入记录列表
// @Summary 获取收入记录列表
// @Description 获取当前用户的收入记录列表，支持分页和筛选
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param source query string false "来源筛选"
// @Param start_time query string false "开始时间 (2024-01-01)"
// @Param end_time query string false "结束时间 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req IncomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Income{}).Where("user_id = ?", userID)

	if req.Source != "" {
		query = query.Where("source = ?", req.Source)
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

	var incomes []models.Income
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, created_at DESC").Offset(offset).Limit(req.PageSize).Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     incomes,
	})
}

// Get 获取单条收入记录
// @Summary 获取单条收入记录
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Success 200 {object} Response{data=models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, income)
}

// Update 更新收入记录
// @Summary 更新收入记录
// @Tags 收入记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Param request body CreateIncomeRequest true "收入记录信息"
// @Success 200 {object} Response{data=models.Income} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.validator.ValidateTitle(req.Title); err != nil {
		BadRequest(c, err.Error())
		return
	}

	req.Source = strings.TrimSpace(req.Source)
	var source models.IncomeSource
	if err := database.DB.Where("name = ?", req.Source).First(&source).Error; err != nil {
		BadRequest(c, "无效的收入来源，请先在后台维护来源")
		return
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{
		"amount": req.Amount,
		"title":  strings.TrimSpace(req.Title),
		"source": req.Source,
		"date":   date,
	}
	if err := database.DB.Model(&income).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	// 重新获取更新后的记录
	database.DB.First(&income, income.ID)
	SuccessWithMessage(c, "更新成功", income)
}

// Delete 删除收入记录
// @Summary 删除收入记录
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// GetSources 获取收入来源列表
// @Summary 获取收入来源列表
// @Tags 收入记录
// @Produce json
// @Success 200 {object} Response{data=[]models.IncomeSource} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/income-sources [get]
func (h *IncomeHandler) GetSources(c *gin.Context) {
	var list []models.IncomeSource
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
