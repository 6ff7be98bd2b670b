package app

import (
	"errors"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
)

// ValidError a single field validation failure
// ValidError 单个字段的验证错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString joins every message into one line
// ErrorsToString 将所有错误消息拼接为一行
func (v ValidErrors) ErrorsToString() string {
	return v.Error()
}

// MapsToString field -> message
// MapsToString 字段 -> 错误消息
func (v ValidErrors) MapsToString() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Key] = err.Message
	}
	return out
}

// BindAndValid binds the request body/query into v and validates it
// BindAndValid 绑定请求参数并验证
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	return validResult(c, c.ShouldBind(v))
}

// BindUriAndValid binds path parameters into v and validates it
// BindUriAndValid 绑定路径参数并验证
func BindUriAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	return validResult(c, c.ShouldBindUri(v))
}

func validResult(c *gin.Context, err error) (bool, ValidErrors) {
	if err == nil {
		return true, nil
	}

	var errs ValidErrors

	var verrs validatorV10.ValidationErrors
	if !errors.As(err, &verrs) {
		// Malformed body or a value that cannot be converted to the field type
		// 请求体格式错误或参数类型无法转换
		errs = append(errs, &ValidError{Key: "request", Message: err.Error()})
		return false, errs
	}

	if trans, ok := translator(c); ok {
		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{Key: fieldKey(key), Message: value})
		}
	} else {
		for _, fe := range verrs {
			errs = append(errs, &ValidError{Key: fe.Field(), Message: fe.Error()})
		}
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Key < errs[j].Key })
	return false, errs
}

func translator(c *gin.Context) (ut.Translator, bool) {
	v, exists := c.Get(TransKey)
	if !exists {
		return nil, false
	}
	trans, ok := v.(ut.Translator)
	return trans, ok
}

// fieldKey strips the struct namespace: "BookmarkCreateRequest.title" -> "title"
func fieldKey(namespace string) string {
	if i := strings.LastIndex(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
