package api

import (
	"fmt"

	"budget/service"

	"github.com/gin-gonic/gin"
)

// ReportsHandler 数据报表处理器
// 负责把统计结果整形成报表模板需要的字段，渲染交给导出层
type ReportsHandler struct {
	stats *service.StatsService
}

// NewReportsHandler 创建数据报表处理器
func NewReportsHandler(stats *service.StatsService) *ReportsHandler {
	return &ReportsHandler{stats: stats}
}

// 报表类型标识
const (
	ReportUserGrowth         = "user-growth"
	ReportFinancialOverview  = "financial-overview"
	ReportSavingsPerformance = "savings-performance"
)

// ReportInfo 可用报表元信息
type ReportInfo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// ListReports 获取可用报表列表
// @Summary 获取可用报表列表
// @Tags 数据报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]ReportInfo} "获取成功"
// @Router /admin/reports [get]
func (h *ReportsHandler) ListReports(c *gin.Context) {
	Success(c, []ReportInfo{
		{
			ID:          1,
			Title:       "用户增长报表",
			Description: "近6个月的用户注册趋势",
			Type:        ReportUserGrowth,
		},
		{
			ID:          2,
			Title:       "平台财务总览",
			Description: "平台收入、支出与储蓄率",
			Type:        ReportFinancialOverview,
		},
		{
			ID:          3,
			Title:       "储蓄目标达成报表",
			Description: "储蓄目标的达成率与进度",
			Type:        ReportSavingsPerformance,
		},
	})
}

// UserGrowthReport 用户增长报表数据
type UserGrowthReport struct {
	TotalUsers   int64                 `json:"total_users"`   // 窗口内注册用户总数
	LatestGrowth string                `json:"latest_growth"` // 最近一月环比增长，保留1位小数
	UserGrowth   []service.MonthBucket `json:"user_growth"`
}

// buildUserGrowthReport 整形用户增长报表
func (h *ReportsHandler) buildUserGrowthReport() (*UserGrowthReport, error) {
	buckets, err := h.stats.MonthlyUserGrowth(6)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, b := range buckets {
		total += b.Count
	}

	return &UserGrowthReport{
		TotalUsers:   total,
		LatestGrowth: fmt.Sprintf("%.1f", service.LatestGrowthRate(buckets)),
		UserGrowth:   buckets,
	}, nil
}

// PreviewUserGrowth 预览用户增长报表
// @Summary 预览用户增长报表
// @Tags 数据报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=UserGrowthReport} "获取成功"
// @Router /admin/reports/user-growth [get]
func (h *ReportsHandler) PreviewUserGrowth(c *gin.Context) {
	report, err := h.buildUserGrowthReport()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	Success(c, report)
}

// FinancialOverviewReport 平台财务总览报表数据
type FinancialOverviewReport struct {
	*service.PlatformFinancialStats
	NetCashFlow float64 `json:"net_cash_flow"` // 收入减支出
}

// buildFinancialOverviewReport 整形财务总览报表
func (h *ReportsHandler) buildFinancialOverviewReport() (*FinancialOverviewReport, error) {
	stats, err := h.stats.GetPlatformFinancialStats()
	if err != nil {
		return nil, err
	}
	return &FinancialOverviewReport{
		PlatformFinancialStats: stats,
		NetCashFlow:            stats.TotalIncome - stats.TotalExpenses,
	}, nil
}

// PreviewFinancialOverview 预览平台财务总览
// @Summary 预览平台财务总览
// @Tags 数据报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=FinancialOverviewReport} "获取成功"
// @Router /admin/reports/financial-overview [get]
func (h *ReportsHandler) PreviewFinancialOverview(c *gin.Context) {
	report, err := h.buildFinancialOverviewReport()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	Success(c, report)
}

// SavingsPerformanceReport 储蓄目标达成报表数据
type SavingsPerformanceReport struct {
	*service.SavingsPerformance
	CompletionRate        float64 `json:"completion_rate"`         // 达成目标数/总目标数×100
	ActiveGoals           int64   `json:"active_goals"`            // 未达成目标数
	ActiveGoalsPercentage float64 `json:"active_goals_percentage"` // 未达成目标占比
}

// buildSavingsPerformanceReport 整形储蓄目标达成报表
// 完成率与进行中目标数由基础统计推导而来
func (h *ReportsHandler) buildSavingsPerformanceReport() (*SavingsPerformanceReport, error) {
	perf, err := h.stats.GetSavingsPerformance()
	if err != nil {
		return nil, err
	}

	report := &SavingsPerformanceReport{SavingsPerformance: perf}
	report.ActiveGoals = perf.TotalGoals - perf.CompletedGoals
	if perf.TotalGoals > 0 {
		report.CompletionRate = float64(perf.CompletedGoals) / float64(perf.TotalGoals) * 100
		report.ActiveGoalsPercentage = float64(report.ActiveGoals) / float64(perf.TotalGoals) * 100
	}
	return report, nil
}

// PreviewSavingsPerformance 预览储蓄目标达成报表
// @Summary 预览储蓄目标达成报表
// @Tags 数据报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SavingsPerformanceReport} "获取成功"
// @Router /admin/reports/savings-performance [get]
func (h *ReportsHandler) PreviewSavingsPerformance(c *gin.Context) {
	report, err := h.buildSavingsPerformanceReport()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	Success(c, report)
}
