package code

import (
	"fmt"
	"reflect"
	"strings"
)

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

// GetMessage returns the message in the fallback language
// GetMessage 返回回退语言的消息
func (l lang) GetMessage() string {
	return l.Message(FALLBACK_LNG)
}

// Message returns the message for the given language, falling back to English
// Message 根据传入的语言返回相应的消息，找不到时回退到英文
func (l lang) Message(language string) string {
	val := reflect.ValueOf(l)

	if language != "" {
		field := val.FieldByName(language)
		if field.IsValid() && field.String() != "" {
			return field.String()
		}
	}

	fallbackField := val.FieldByName(FALLBACK_LNG)
	if fallbackField.IsValid() && fallbackField.String() != "" {
		return fallbackField.String()
	}
	return fmt.Sprintf("No message available for language: %s", language)
}

// GetSupportedLanguages returns all languages supported by the lang type
// GetSupportedLanguages 函数返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}

// NormalizeLang maps a request language (zh-CN, EN, ...) to a supported one, or the fallback
// NormalizeLang 将请求语言规范化为支持的语言，不支持时返回回退语言
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(language, "-", "_"))
	if language == "zh" {
		language = "zh_cn"
	}
	for _, l := range GetSupportedLanguages() {
		if l == language {
			return l
		}
	}
	return FALLBACK_LNG
}
