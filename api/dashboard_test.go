package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"budget/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_GetSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(5000.0))
	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1800.0))
	mock.ExpectQuery("SELECT source, SUM.* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"source", "total"}).
			AddRow("Salary", 5000.0))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/summary", NewDashboardHandler(service.NewStatsService()).GetSummary)

	req := httptest.NewRequest("GET", "/dashboard/summary?month=2024-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 5000.0, data["total_income"])
	assert.Equal(t, 3200.0, data["remaining_budget"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardHandler_GetSummary_InvalidMonth(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/summary", NewDashboardHandler(service.NewStatsService()).GetSummary)

	req := httptest.NewRequest("GET", "/dashboard/summary?month=January", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
