package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formRequest struct {
	Title string `json:"title" binding:"required"`
	Link  string `json:"link" binding:"required"`
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"min=0"`
}

func jsonContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindAndValid(t *testing.T) {
	params := &formRequest{}
	valid, errs := BindAndValid(jsonContext(`{"title":"Docs","link":"https://example.com"}`), params)
	require.True(t, valid)
	assert.Empty(t, errs)
	assert.Equal(t, "Docs", params.Title)

	valid, errs = BindAndValid(jsonContext(`{}`), &formRequest{})
	require.False(t, valid)
	require.Len(t, errs, 2)
	// 没有翻译器时使用字段名，按键排序
	assert.Equal(t, "Link", errs[0].Key)
	assert.Equal(t, "Title", errs[1].Key)
	assert.Len(t, errs.MapsToString(), 2)
	assert.Contains(t, errs.ErrorsToString(), ",")

	valid, errs = BindAndValid(jsonContext(`{"title":`), &formRequest{})
	require.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, "request", errs[0].Key)
}

func TestBindUriAndValid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
		want  int64
	}{
		{"number", "42", true, 42},
		{"zero", "0", true, 0},
		{"negative", "-1", false, 0},
		{"not a number", "abc", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := jsonContext("")
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			params := &uriRequest{}
			valid, errs := BindUriAndValid(c, params)
			assert.Equal(t, tt.valid, valid, errs.ErrorsToString())
			if tt.valid {
				assert.Equal(t, tt.want, params.ID)
			}
		})
	}
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "title", fieldKey("BookmarkCreateRequest.title"))
	assert.Equal(t, "title", fieldKey("title"))
}
