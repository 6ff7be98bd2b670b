package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
)

// CustomValidator gin binding.StructValidator backed by validator/v10
// CustomValidator 基于 validator/v10 的 gin 结构体验证器
type CustomValidator struct {
	Once     sync.Once
	Validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct validates structs, pointers to structs and slices of them
// ValidateStruct 验证结构体、结构体指针及其切片
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}

	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		if value.Elem().Kind() != reflect.Struct {
			return v.ValidateStruct(value.Elem().Interface())
		}
		return v.validateStruct(obj)
	case reflect.Struct:
		return v.validateStruct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (v *CustomValidator) validateStruct(obj interface{}) error {
	v.lazyinit()
	return v.Validate.Struct(obj)
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.Once.Do(func() {
		v.Validate = validator.New()
		v.Validate.SetTagName("binding")
	})
}

// Setup installs the validator into gin and builds the en/zh translators
// Setup 将验证器注册到 gin，并初始化中英文翻译器
func Setup() (*ut.UniversalTranslator, error) {
	customValidator := NewCustomValidator()
	binding.Validator = customValidator

	validate, ok := customValidator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("validator engine is not *validator.Validate")
	}

	// 错误信息中使用 json 字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "uri", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, errors.Wrap(err, "register zh translations")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, errors.Wrap(err, "register en translations")
	}

	if err := RegisterCustom(validate, enTran, zhTran); err != nil {
		return nil, err
	}

	return uni, nil
}

// RegisterCustom registers project specific tags and their messages
// RegisterCustom 注册项目自定义的验证标签及其提示信息
func RegisterCustom(validate *validator.Validate, enTran, zhTran ut.Translator) error {
	// notblank: 字符串去除空白后不能为空
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return errors.Wrap(err, "register notblank")
	}

	tagMessages := []struct {
		trans ut.Translator
		text  string
	}{
		{enTran, "{0} must not be blank"},
		{zhTran, "{0}不能为空"},
	}
	for _, tm := range tagMessages {
		text := tm.text
		err := validate.RegisterTranslation("notblank", tm.trans,
			func(ut ut.Translator) error {
				return ut.Add("notblank", text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T("notblank", fe.Field())
				return t
			},
		)
		if err != nil {
			return errors.Wrap(err, "register notblank translation")
		}
	}

	return nil
}
