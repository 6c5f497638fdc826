// Package validation проверяет входные данные поверх go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

// MaxReactionTypeLength совпадает с VARCHAR(255) колонки reactions.type.
const MaxReactionTypeLength = 255

// tagReactionType - тег для полей с типом реакции: `validate:"reaction_type"`.
const tagReactionType = "reaction_type"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// имена полей в ошибках берём из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation(tagReactionType, func(fl validator.FieldLevel) bool {
		return IsReactionType(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsReactionType сообщает, помещается ли строка в колонку reactions.type.
// Тип - произвольная метка, пустая строка тоже допустима.
func IsReactionType(value string) bool {
	return utf8.RuneCountInString(value) <= MaxReactionTypeLength
}

// ReactionType проверяет тип реакции.
func ReactionType(value string) error {
	if !IsReactionType(value) {
		return apperror.ErrInvalidReactionType
	}
	return nil
}

// Struct проверяет структуру по тегам validate и возвращает ошибку валидации с первым нарушением.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Wrap(err, apperror.ErrCodeValidation, "некорректные данные запроса")
	}

	first := verrs[0]
	if first.Tag() == tagReactionType {
		return apperror.ErrInvalidReactionType
	}
	return apperror.Wrap(err, apperror.ErrCodeValidation, fieldMessage(first))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("поле %s обязательно", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("поле %s должно быть не меньше %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("поле %s должно быть не больше %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("поле %s некорректно", fe.Field())
	}
}
