package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/faktulove/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		h.HandleError(c, err)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	t.Run("domain error maps code and status", func(t *testing.T) {
		w := performWithError(t, shared.NewDomainError("ALREADY_EXISTS", "Company with this NIP already registered"))

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
		assert.Equal(t, "Company with this NIP already registered", resp.Error.Message)
	})

	t.Run("invalid state maps to 422", func(t *testing.T) {
		w := performWithError(t, shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("not found sentinel maps to 404", func(t *testing.T) {
		w := performWithError(t, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("forbidden sentinel maps to 403", func(t *testing.T) {
		w := performWithError(t, shared.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown error maps to 500 without leaking detail", func(t *testing.T) {
		w := performWithError(t, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w)
		assert.NotContains(t, resp.Error.Message, "pq:")
	})
}
