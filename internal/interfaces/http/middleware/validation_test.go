package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel/backend/internal/interfaces/http/dto"
)

type claimRequest struct {
	CustomerID  string `json:"customer_id" binding:"required,uuid"`
	Code        string `json:"code" binding:"required,min=3"`
	Scope       string `json:"scope" binding:"omitempty,oneof=ALL ROOM SERVICE"`
	MaxDiscount int    `json:"max_discount" binding:"omitempty,gt=0"`
}

func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/claims", func(c *gin.Context) {
		var req claimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req))
	})
	return router
}

func postJSON(t *testing.T, router *gin.Engine, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/claims", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	t.Run("reports each failed field by json name", func(t *testing.T) {
		w, resp := postJSON(t, router, map[string]any{
			"customer_id":  "not-a-uuid",
			"code":         "ab",
			"scope":        "ROOMS",
			"max_discount": -5,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Request validation failed", resp.Error.Message)

		byField := map[string]string{}
		for _, d := range resp.Error.Details {
			byField[d.Field] = d.Message
		}
		assert.Equal(t, "Must be a valid UUID", byField["customer_id"])
		assert.Equal(t, "Must be at least 3 characters", byField["code"])
		assert.Equal(t, "Must be one of: ALL ROOM SERVICE", byField["scope"])
		assert.Equal(t, "Must be greater than 0", byField["max_discount"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		w, resp := postJSON(t, router, map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 2)
		for _, d := range resp.Error.Details {
			assert.Equal(t, "This field is required", d.Message)
		}
	})

	t.Run("malformed json yields no field details", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", bytes.NewBufferString("{nope"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("valid payload passes through", func(t *testing.T) {
		w, resp := postJSON(t, router, map[string]any{
			"customer_id": "0e4a1a88-3a7c-4c8e-9a2f-b6d93f1c5a01",
			"code":        "SUMMER10",
			"scope":       "ROOM",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})
}
