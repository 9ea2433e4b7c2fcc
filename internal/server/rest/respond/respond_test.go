package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", common.NewValidationError("title", "title is required"), http.StatusBadRequest, "title is required"},
		{"duplicate", &common.DuplicateError{Field: "email"}, http.StatusConflict, "email already exists"},
		{"wrapped duplicate", fmt.Errorf("create: %w", &common.DuplicateError{Field: "username"}), http.StatusConflict, "username already exists"},
		{"credentials", common.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"unauthenticated", common.ErrUnauthenticated, http.StatusUnauthorized, MsgUnauthenticated},
		{"expired token", &common.TokenError{Kind: common.TokenExpired}, http.StatusUnauthorized, MsgUnauthenticated},
		{"reset token", common.ErrInvalidResetToken, http.StatusBadRequest, "invalid or expired reset token"},
		{"not found", fmt.Errorf("db: %w", common.ErrNotFound), http.StatusNotFound, MsgNotFound},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestError_HidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Error(c, logging.Nop(), errors.New("db error: password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}

type bindTarget struct {
	CurrentPassword string   `json:"currentPassword" binding:"required"`
	Kind            string   `json:"type" binding:"omitempty,oneof=income expense"`
	Amount          *float64 `json:"amount" binding:"omitempty,gte=0"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var v bindTarget
	err := c.ShouldBindJSON(&v)
	require.Error(t, err)
	return BindError(err)
}

func TestBindError(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"missing field", `{}`, "currentPassword", "currentPassword is required"},
		{"oneof", `{"currentPassword":"x","type":"gift"}`, "type", "type must be one of: income, expense"},
		{"gte", `{"currentPassword":"x","amount":-1}`, "amount", "amount must be at least 0"},
		{"wrong type", `{"currentPassword":5}`, "currentPassword", "currentPassword has the wrong type"},
		{"broken json", `{`, "", MsgInvalidBody},
		{"empty body", ``, "", "request body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bind(t, tt.body)
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Message(c, "Todo deleted")

	var body MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Todo deleted", body.Message)
}
