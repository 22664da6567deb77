package book

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 字段约束
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	MinYear         = 1000
	MinISBNLength   = 10
	MaxISBNLength   = 13
)

// now 当前时间(测试中可替换)
var now = time.Now

// notBlank 拒绝只包含空白字符的字符串
var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("不能为空")
	}
	return nil
})

func titleRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("不能为空"),
		notBlank,
		validation.RuneLength(1, MaxTitleLength).Error("长度必须在1-200之间"),
	}
}

func authorRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("不能为空"),
		notBlank,
		validation.RuneLength(1, MaxAuthorLength).Error("长度必须在1-100之间"),
	}
}

func yearRules() []validation.Rule {
	maxYear := now().Year()
	return []validation.Rule{
		validation.Required.Error("不能为空"),
		validation.Min(MinYear).Error("不能早于1000年"),
		validation.Max(maxYear).Error("不能晚于当前年份"),
	}
}

// isbnRules ISBN可选,提供时长度10-13
// RuneLength对空字符串不生效,所以空值直接通过
func isbnRules() []validation.Rule {
	return []validation.Rule{
		validation.RuneLength(MinISBNLength, MaxISBNLength).Error("长度必须在10-13之间"),
	}
}

// Validate 校验完整输入
// 返回的错误列出所有不合法字段,而不是遇到第一个就返回
func (d Draft) Validate() error {
	return toValidationError(validation.Errors{
		"title":  validation.Validate(d.Title, titleRules()...),
		"author": validation.Validate(d.Author, authorRules()...),
		"year":   validation.Validate(d.Year, yearRules()...),
		"isbn":   validation.Validate(d.ISBN, isbnRules()...),
	}.Filter())
}

// Validate 校验部分更新
// 所有字段可选,但提供的字段必须满足与Draft相同的约束
func (p Patch) Validate() error {
	return toValidationError(validation.Errors{
		"title":  validateOptional(p.Title, titleRules()...),
		"author": validateOptional(p.Author, authorRules()...),
		"year":   validateOptional(p.Year, yearRules()...),
		"isbn":   validateOptional(p.ISBN, isbnRules()...),
	}.Filter())
}

func validateOptional[T any](value *T, rules ...validation.Rule) error {
	if value == nil {
		return nil
	}
	return validation.Validate(*value, rules...)
}

// toValidationError ozzo错误 → 带字段明细的AppError
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
		return apperrors.Validation(details)
	}

	return apperrors.Validation(map[string]string{"body": err.Error()})
}
