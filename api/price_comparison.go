package api

import (
	"budget/database"
	"budget/models"

	"github.com/gin-gonic/gin"
)

// PriceComparisonHandler 比价处理器
type PriceComparisonHandler struct{}

// NewPriceComparisonHandler 创建比价处理器
func NewPriceComparisonHandler() *PriceComparisonHandler {
	return &PriceComparisonHandler{}
}

// List 获取比价列表
// @Summary 获取比价列表
// @Description 返回同类商品在各商家的价格对比，按商品名、价格升序排列
// @Tags 比价
// @Produce json
// @Security BearerAuth
// @Param category query string false "类别筛选"
// @Success 200 {object} Response{data=[]models.PriceComparison} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/price-comparisons [get]
func (h *PriceComparisonHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.PriceComparison{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var list []models.PriceComparison
	if err := query.Order("product ASC, price ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, list)
}
