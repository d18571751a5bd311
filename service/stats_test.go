package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestGrowthRate(t *testing.T) {
	// 不足两个月
	assert.Equal(t, float64(0), LatestGrowthRate(nil))
	assert.Equal(t, float64(0), LatestGrowthRate([]MonthBucket{{Month: "2024-01", Count: 10}}))

	// 上月为 0 时不计算环比，避免除零
	assert.Equal(t, float64(0), LatestGrowthRate([]MonthBucket{
		{Month: "2024-01", Count: 0},
		{Month: "2024-02", Count: 5},
	}))

	// 10 -> 15 增长 50%
	assert.InDelta(t, 50.0, LatestGrowthRate([]MonthBucket{
		{Month: "2024-01", Count: 10},
		{Month: "2024-02", Count: 15},
	}), 0.001)

	// 负增长
	assert.InDelta(t, -20.0, LatestGrowthRate([]MonthBucket{
		{Month: "2024-01", Count: 10},
		{Month: "2024-02", Count: 8},
	}), 0.001)
}

func TestMonthlyUserGrowth(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT DATE_FORMAT.* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"month", "count"}).
			AddRow("2024-01", 3).
			AddRow("2024-02", 7))

	buckets, err := NewStatsService().MonthlyUserGrowth(6)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01", buckets[0].Month)
	assert.Equal(t, int64(7), buckets[1].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlatformFinancialStats(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(10000.0))
	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(4000.0))
	mock.ExpectQuery("SELECT count.* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT COUNT.*DISTINCT.* FROM `savings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT category, COUNT.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("Groceries", 12).
			AddRow("Housing", 8).
			AddRow("Transport", 8))

	stats, err := NewStatsService().GetPlatformFinancialStats()
	require.NoError(t, err)
	assert.Equal(t, 10000.0, stats.TotalIncome)
	assert.Equal(t, 4000.0, stats.TotalExpenses)
	// (10000-4000)/10000 = 60%
	assert.InDelta(t, 60.0, stats.AverageSavingsRate, 0.001)
	// 4 个用户中 1 个有已达成目标 = 25%
	assert.InDelta(t, 25.0, stats.SavingsGoalSuccessRate, 0.001)
	require.Len(t, stats.TopExpenseCategories, 3)
	assert.Equal(t, "Groceries", stats.TopExpenseCategories[0].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlatformFinancialStats_ZeroIncome(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0.0))
	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(500.0))
	mock.ExpectQuery("SELECT count.* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT category, COUNT.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}))

	stats, err := NewStatsService().GetPlatformFinancialStats()
	require.NoError(t, err)
	// 收入为 0 时储蓄率为 0，不做除法
	assert.Equal(t, float64(0), stats.AverageSavingsRate)
	// 没有用户时达成率为 0
	assert.Equal(t, float64(0), stats.SavingsGoalSuccessRate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSavingsPerformance(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT count.* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery("SELECT COUNT.*DISTINCT.* FROM `savings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT count.* FROM `savings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))
	mock.ExpectQuery("SELECT count.* FROM `savings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	perf, err := NewStatsService().GetSavingsPerformance()
	require.NoError(t, err)
	assert.InDelta(t, 40.0, perf.SuccessRate, 0.001)
	assert.Equal(t, int64(20), perf.TotalGoals)
	assert.Equal(t, int64(6), perf.CompletedGoals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserMonthlySummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	date := func(day int) time.Time {
		return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	}

	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(5000.0))
	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1800.0))
	mock.ExpectQuery("SELECT source, SUM.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"source", "total"}).
			AddRow("Salary", 4500.0).
			AddRow("Freelance", 500.0))

	// 最近收支记录
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "title", "source", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, 4500.0, "Monthly Salary", "Salary", date(5), date(5), date(5), nil))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "title", "category", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, 1, 99.5, "Weekly Groceries", "Groceries", date(10), date(10), date(10), nil).
			AddRow(3, 1, 45.0, "Bus Pass", "Transport", date(3), date(3), date(3), nil))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	summary, err := NewStatsService().GetUserMonthlySummary(1, start, end)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, summary.TotalIncome)
	assert.Equal(t, 1800.0, summary.TotalExpenses)
	assert.Equal(t, 3200.0, summary.RemainingBudget)
	require.Len(t, summary.IncomeBySource, 2)

	// 收支混排按日期倒序
	require.Len(t, summary.RecentTransactions, 3)
	assert.Equal(t, "-99.50", summary.RecentTransactions[0].DisplayAmount)
	assert.Equal(t, "expense", summary.RecentTransactions[0].Type)
	assert.Equal(t, "+4500.00", summary.RecentTransactions[1].DisplayAmount)
	assert.Equal(t, "Jan 05", summary.RecentTransactions[1].Date)
	assert.Equal(t, "Bus Pass", summary.RecentTransactions[2].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
