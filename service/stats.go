package service

import (
	"fmt"
	"sort"
	"time"

	"budget/database"
	"budget/models"
)

// StatsService 平台统计聚合
// 全部为只读查询，每次调用都基于当前数据实时计算，不做缓存
type StatsService struct{}

// NewStatsService 创建统计服务
func NewStatsService() *StatsService {
	return &StatsService{}
}

// MonthBucket 按月统计的用户数
type MonthBucket struct {
	Month string `json:"month"` // 格式: 2024-01
	Count int64  `json:"count"`
}

// MonthlyUserGrowth 统计最近 sinceMonthsAgo 个月内注册用户数，按自然月分桶
// 返回结果按月份升序排列
func (s *StatsService) MonthlyUserGrowth(sinceMonthsAgo int) ([]MonthBucket, error) {
	if sinceMonthsAgo <= 0 {
		sinceMonthsAgo = 6
	}
	cutoff := time.Now().AddDate(0, -sinceMonthsAgo, 0)

	var buckets []MonthBucket
	err := database.DB.Model(&models.User{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') as month, COUNT(*) as count").
		Where("created_at >= ?", cutoff).
		Group("month").
		Order("month ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// LatestGrowthRate 计算最近一个月相对于上一个月的环比增长率（百分比）
// 不足两个月或上月为 0 时返回 0，避免除零
func LatestGrowthRate(buckets []MonthBucket) float64 {
	if len(buckets) < 2 {
		return 0
	}
	latest := buckets[len(buckets)-1].Count
	prior := buckets[len(buckets)-2].Count
	if prior == 0 {
		return 0
	}
	return float64(latest-prior) / float64(prior) * 100
}

// CategoryCount 支出类别的交易笔数
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// PlatformFinancialStats 平台财务统计
type PlatformFinancialStats struct {
	TotalIncome            float64         `json:"total_income"`
	TotalExpenses          float64         `json:"total_expenses"`
	AverageSavingsRate     float64         `json:"average_savings_rate"`      // (收入-支出)/收入×100，收入为 0 时为 0
	SavingsGoalSuccessRate float64         `json:"savings_goal_success_rate"` // 拥有已达成目标的用户占比
	TopExpenseCategories   []CategoryCount `json:"top_expense_categories"`    // 按笔数前5，笔数相同按类别名升序
}

// GetPlatformFinancialStats 计算全平台收支与储蓄统计
func (s *StatsService) GetPlatformFinancialStats() (*PlatformFinancialStats, error) {
	stats := &PlatformFinancialStats{}

	if err := database.DB.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalIncome).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalExpenses).Error; err != nil {
		return nil, err
	}

	if stats.TotalIncome > 0 {
		stats.AverageSavingsRate = (stats.TotalIncome - stats.TotalExpenses) / stats.TotalIncome * 100
	}

	successRate, err := s.savingsGoalSuccessRate()
	if err != nil {
		return nil, err
	}
	stats.SavingsGoalSuccessRate = successRate

	// 笔数相同按类别名升序，保证 top5 结果确定
	if err := database.DB.Model(&models.Expense{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC, category ASC").
		Limit(5).
		Scan(&stats.TopExpenseCategories).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// savingsGoalSuccessRate 拥有至少一个已达成储蓄目标的用户数 / 总用户数 × 100
// 没有用户时为 0
func (s *StatsService) savingsGoalSuccessRate() (float64, error) {
	var totalUsers int64
	if err := database.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return 0, err
	}
	if totalUsers == 0 {
		return 0, nil
	}

	var successUsers int64
	if err := database.DB.Model(&models.Saving{}).
		Where("saved_amount >= target_amount").
		Distinct("user_id").
		Count(&successUsers).Error; err != nil {
		return 0, err
	}

	return float64(successUsers) / float64(totalUsers) * 100, nil
}

// SavingsPerformance 储蓄目标达成情况
type SavingsPerformance struct {
	SuccessRate    float64 `json:"success_rate"`
	TotalGoals     int64   `json:"total_goals"`
	CompletedGoals int64   `json:"completed_goals"`
}

// GetSavingsPerformance 统计储蓄目标总数与达成数
// 完成率、进行中目标数等衍生值由调用方按需计算
func (s *StatsService) GetSavingsPerformance() (*SavingsPerformance, error) {
	perf := &SavingsPerformance{}

	successRate, err := s.savingsGoalSuccessRate()
	if err != nil {
		return nil, err
	}
	perf.SuccessRate = successRate

	if err := database.DB.Model(&models.Saving{}).Count(&perf.TotalGoals).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Saving{}).
		Where("saved_amount >= target_amount").
		Count(&perf.CompletedGoals).Error; err != nil {
		return nil, err
	}

	return perf, nil
}

// SourceTotal 按收入来源汇总
type SourceTotal struct {
	Source string  `json:"source"`
	Total  float64 `json:"total"`
}

// TransactionEntry 收支混排的展示条目
type TransactionEntry struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	DisplayAmount string `json:"amount"` // 带符号的展示金额，如 +5000.00 / -99.50
	Date          string `json:"date"`   // 如 Jan 15
	Type          string `json:"type"`   // income/expense

	date time.Time
}

// UserMonthlySummary 单个用户某个时间段的收支概览
type UserMonthlySummary struct {
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	RemainingBudget    float64            `json:"remaining_budget"`
	IncomeBySource     []SourceTotal      `json:"income_by_source"`
	RecentTransactions []TransactionEntry `json:"recent_transactions"`
}

// GetUserMonthlySummary 计算用户在 [start, end] 内的收支汇总、
// 按来源分组的收入，以及最近 8 笔收支混排记录（按日期倒序）
func (s *StatsService) GetUserMonthlySummary(userID uint, start, end time.Time) (*UserMonthlySummary, error) {
	summary := &UserMonthlySummary{}

	if err := database.DB.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Scan(&summary.TotalIncome).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Scan(&summary.TotalExpenses).Error; err != nil {
		return nil, err
	}
	summary.RemainingBudget = summary.TotalIncome - summary.TotalExpenses

	if err := database.DB.Model(&models.Income{}).
		Select("source, SUM(amount) as total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("source").
		Scan(&summary.IncomeBySource).Error; err != nil {
		return nil, err
	}

	recent, err := s.recentTransactions(userID, 8)
	if err != nil {
		return nil, err
	}
	summary.RecentTransactions = recent

	return summary, nil
}

// recentTransactions 取用户最近的收入与支出各 limit 笔，
// 合并后按日期倒序截取前 limit 笔
func (s *StatsService) recentTransactions(userID uint, limit int) ([]TransactionEntry, error) {
	var incomes []models.Income
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&incomes).Error; err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	entries := make([]TransactionEntry, 0, len(incomes)+len(expenses))
	for _, in := range incomes {
		entries = append(entries, TransactionEntry{
			ID:            in.ID,
			Name:          in.Title,
			DisplayAmount: fmt.Sprintf("+%.2f", in.Amount),
			Date:          in.Date.Format("Jan 02"),
			Type:          "income",
			date:          in.Date,
		})
	}
	for _, ex := range expenses {
		entries = append(entries, TransactionEntry{
			ID:            ex.ID,
			Name:          ex.Title,
			DisplayAmount: fmt.Sprintf("-%.2f", ex.Amount),
			Date:          ex.Date.Format("Jan 02"),
			Type:          "expense",
			date:          ex.Date,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date.After(entries[j].date)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
