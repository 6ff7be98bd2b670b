package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(lang string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(app.TraceIDKey, "trace-1")
	c.Set(app.LangKey, lang)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) AppError {
	t.Helper()
	var body AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		lang        string
		wantStatus  int
		wantCode    int
		wantMessage string
		wantDetails []string
	}{
		{"code", code.ErrorBookmarkNotFound, "en", http.StatusNotFound, 520, "Bookmark not found", nil},
		{"code zh", code.ErrorBookmarkNotFound, "zh_cn", http.StatusNotFound, 520, "书签不存在", nil},
		{"details", code.ErrorDBQuery.WithDetails("disk I/O"), "en", http.StatusInternalServerError, 406, "Database query failed", []string{"disk I/O"}},
		{"wrapped code", fmt.Errorf("edit: %w", code.ErrorUserLoginPasswordFailed), "en", http.StatusForbidden, 512, "Credentials incorrect", nil},
		{"unknown", fmt.Errorf("boom"), "en", http.StatusInternalServerError, 500, "Internal Server Error", nil},
		{"app error", NewAppError(code.ErrorInvalidParams, nil), "en", http.StatusBadRequest, 405, "Invalid parameters", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(tt.lang)
			ErrorResponse(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantDetails, body.Details)
			assert.Equal(t, "trace-1", body.TraceID)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestAbortWithCode(t *testing.T) {
	c, w := newContext("en")
	AbortWithCode(c, code.ErrorNotUserAuthToken)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 505, decode(t, w).Code)
	assert.Equal(t, http.StatusUnauthorized, c.GetInt("status_code"))
}

func TestAppErrorHelpers(t *testing.T) {
	cause := fmt.Errorf("root cause")
	appErr := NewAppError(code.ErrorDBQuery, cause).WithData(map[string]string{"k": "v"})

	wrapped := fmt.Errorf("outer: %w", appErr)
	assert.True(t, IsAppError(wrapped))
	assert.Same(t, appErr, GetAppError(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "Database query failed", appErr.Error())

	assert.False(t, IsAppError(cause))
	assert.Nil(t, GetAppError(cause))
}
