package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReading(t *testing.T, env *TestEnv, token string, occurredAt time.Time, value string) map[string]interface{} {
	t.Helper()

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/glucose", gin.H{
		"occurred_at": occurredAt.Format(time.RFC3339),
		"value":       value,
		"unit":        "mmol/L",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["reading"]
}

func TestGlucoseCreateAndList(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	createReading(t, env, token, time.Now(), "5.6")
	createReading(t, env, token, time.Now().Add(-time.Hour), "7.2")

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Readings   []map[string]interface{} `json:"readings"`
		Pagination struct {
			TotalCount int `json:"total_count"`
			PageSize   int `json:"page_size"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Readings, 2)
	assert.Equal(t, 2, body.Pagination.TotalCount)
	assert.Equal(t, 50, body.Pagination.PageSize)
}

func TestGlucoseListRejectsMalformedPaging(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	createReading(t, env, token, time.Now(), "5.6")

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose?page_size=10abc&page=2abc", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pagination struct {
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 50, body.Pagination.PageSize, "a value with trailing garbage is not a valid page size")
	assert.Equal(t, 1, body.Pagination.Page)
}

func TestGlucoseCreateValidation(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/glucose", gin.H{
		"value": "0",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "occurred_at")
	assert.Contains(t, body.Fields, "value")
}

func TestGlucoseDefaultUnit(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/glucose", gin.H{
		"occurred_at": time.Now().Format(time.RFC3339),
		"value":       "5.6",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "mmol/L", body["reading"]["unit"])
}

func TestGlucoseListMalformedDate(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose?start_date=03/10/2025", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose?end_date=garbage", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGlucoseUpdateByNonOwner(t *testing.T) {
	env := SetupTestEnv(t)
	_, ownerToken := CreateTestUserAndToken(t, env)
	_, intruderToken := CreateTestUserAndToken(t, env)

	reading := createReading(t, env, ownerToken, time.Now(), "5.6")
	id := reading["id"].(string)

	payload := gin.H{
		"occurred_at": time.Now().Format(time.RFC3339),
		"value":       "9.9",
		"unit":        "mmol/L",
	}

	w := PerformRequest(env.Router, http.MethodPut, "/api/v1/glucose/"+id, payload, intruderToken)
	assert.Equal(t, http.StatusNotFound, w.Code, "foreign records must be indistinguishable from missing ones")

	w = PerformRequest(env.Router, http.MethodPut, "/api/v1/glucose/"+id, payload, ownerToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGlucoseUpdateBadID(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodPut, "/api/v1/glucose/not-a-uuid", gin.H{
		"occurred_at": time.Now().Format(time.RFC3339),
		"value":       "5.6",
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGlucoseExportCSV(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	createReading(t, env, token, time.Now(), "5.6")

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose?export=csv", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "glucose_readings_")
	assert.Contains(t, w.Body.String(), "Date,Time,Value,Unit,Notes")
	assert.Contains(t, w.Body.String(), "5.6")
}

func TestGlucoseExportUnknownFormat(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/glucose?export=pdf", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
