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

func newTestSavingHandler() *SavingHandler {
	return NewSavingHandler(service.NewValidator([]string{"gmail.com"}))
}

func TestSavingHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `savings`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", newTestSavingHandler().Create)

	deadline := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	body := `{"name":"Emergency Fund","target_amount":10000,"saved_amount":2500,"deadline":"` + deadline + `"}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["completed"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingHandler_Create_PastDeadline(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", newTestSavingHandler().Create)

	body := `{"name":"Old Goal","target_amount":1000,"saved_amount":0,"deadline":"2020-01-01"}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestSavingHandler_List_CompletedFlag(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	deadline := time.Now().AddDate(0, 6, 0)
	mock.ExpectQuery("SELECT .* FROM `savings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "target_amount", "saved_amount", "deadline", "description", "created_at", "updated_at", "deleted_at"}).
			// 刚好存满算达成
			AddRow(1, 1, "Vacation", 1000.0, 1000.0, deadline, "", time.Now(), time.Now(), nil).
			// 差一块钱不算
			AddRow(2, 1, "New Laptop", 1000.0, 999.0, deadline, "", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/savings", newTestSavingHandler().List)

	req := httptest.NewRequest("GET", "/savings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, true, list[0].(map[string]interface{})["completed"])
	assert.Equal(t, false, list[1].(map[string]interface{})["completed"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingHandler_Update_PartialFields(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	deadline := time.Now().AddDate(0, 6, 0)
	savingRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "user_id", "name", "target_amount", "saved_amount", "deadline", "description", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, "Vacation", 5000.0, 1200.0, deadline, "", time.Now(), time.Now(), nil)
	}

	mock.ExpectQuery("SELECT .* FROM `savings`").
		WillReturnRows(savingRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `savings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `savings`").
		WillReturnRows(savingRows())

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/savings/:id", newTestSavingHandler().Update)

	// 只更新已存金额
	body := `{"saved_amount":2000}`
	req := httptest.NewRequest("PUT", "/savings/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
