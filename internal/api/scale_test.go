package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createScale(t *testing.T, env *TestEnv, token, greaterThan, unitsToAdd string) map[string]interface{} {
	t.Helper()

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/scales", gin.H{
		"greater_than": greaterThan,
		"units_to_add": unitsToAdd,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["scale"]
}

func TestScaleCreateValidation(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodPost, "/api/v1/scales", gin.H{
		"greater_than": "0",
		"units_to_add": "-2",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "greater_than")
	assert.Contains(t, body.Fields, "units_to_add")
}

func TestScaleListOrderedAndPaginated(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	for _, threshold := range []string{"12.0", "8.0", "10.0"} {
		createScale(t, env, token, threshold, "1")
	}

	w := PerformRequest(env.Router, http.MethodGet, "/api/v1/scales?page_size=10abc", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Scales []struct {
			GreaterThan string `json:"greater_than"`
		} `json:"scales"`
		Pagination struct {
			PageSize   int `json:"page_size"`
			TotalCount int `json:"total_count"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Scales, 3)
	assert.Equal(t, "8", body.Scales[0].GreaterThan)
	assert.Equal(t, "10", body.Scales[1].GreaterThan)
	assert.Equal(t, "12", body.Scales[2].GreaterThan)
	assert.Equal(t, 50, body.Pagination.PageSize)
	assert.Equal(t, 3, body.Pagination.TotalCount)
}

func TestScaleDeleteMissingID(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := CreateTestUserAndToken(t, env)

	w := PerformRequest(env.Router, http.MethodDelete, "/api/v1/scales/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
