package api

import (
	"time"

	"budget/middleware"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 用户仪表盘处理器
type DashboardHandler struct {
	stats *service.StatsService
}

// NewDashboardHandler 创建用户仪表盘处理器
func NewDashboardHandler(stats *service.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// GetSummary 获取本人月度收支概览
// @Summary 获取月度收支概览
// @Description 统计当前用户某个自然月的收入、支出、剩余预算、按来源分组的收入，以及最近8笔收支混排记录。不传 month 时默认当前月。
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Param month query string false "年月 (格式: 2024-01)，默认当前月"
// @Success 200 {object} Response{data=service.UserMonthlySummary} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	monthStr := c.Query("month")
	var start time.Time
	if monthStr == "" {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	} else {
		parsed, err := time.ParseInLocation("2006-01", monthStr, time.Local)
		if err != nil {
			BadRequest(c, "month格式错误，应为: 2024-01")
			return
		}
		start = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	// 该月最后一秒
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	summary, err := h.stats.GetUserMonthlySummary(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, summary)
}
