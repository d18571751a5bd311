package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"budget/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIncomeHandler() *IncomeHandler {
	return NewIncomeHandler(service.NewValidator([]string{"gmail.com"}))
}

func TestIncomeHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 校验来源
	mock.ExpectQuery("SELECT .* FROM `income_sources`").
		WithArgs("Salary").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "Salary", 10, time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `incomes`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/incomes", newTestIncomeHandler().Create)

	body := `{"amount":5000,"title":"Monthly Salary","source":"Salary","date":"2024-01-15"}`
	req := httptest.NewRequest("POST", "/incomes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeHandler_Create_FutureDate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `income_sources`").
		WithArgs("Salary").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "Salary", 10, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/incomes", newTestIncomeHandler().Create)

	// 明天的日期应被拒绝
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	body := `{"amount":5000,"title":"Monthly Salary","source":"Salary","date":"` + tomorrow + `"}`
	req := httptest.NewRequest("POST", "/incomes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeHandler_Create_InvalidTitle(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/incomes", newTestIncomeHandler().Create)

	body := `{"amount":5000,"title":"Salary 2024!","source":"Salary","date":"2024-01-15"}`
	req := httptest.NewRequest("POST", "/incomes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestIncomeHandler_Create_NegativeAmount(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/incomes", newTestIncomeHandler().Create)

	body := `{"amount":-100,"title":"Monthly Salary","source":"Salary","date":"2024-01-15"}`
	req := httptest.NewRequest("POST", "/incomes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestIncomeHandler_Create_UnknownSource(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `income_sources`").
		WithArgs("Lottery").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/incomes", newTestIncomeHandler().Create)

	body := `{"amount":100,"title":"Lucky Draw","source":"Lottery","date":"2024-01-15"}`
	req := httptest.NewRequest("POST", "/incomes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncomeHandler_Get_OtherUsersRecord(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 查询条件带 user_id，查不到他人的记录
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(2))
	router.GET("/incomes/:id", newTestIncomeHandler().Get)

	req := httptest.NewRequest("GET", "/incomes/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}
