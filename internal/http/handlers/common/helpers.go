package common

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/reactions-backend/internal/dto"
	"github.com/ignatzorin/reactions-backend/internal/http/middleware"
	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

// CurrentUserID extracts user ID from Gin context
func CurrentUserID(c *gin.Context) (int64, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, apperror.ErrUnresolvedUser
	}

	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, apperror.ErrUnresolvedUser
	}

	return userID, nil
}

// CurrentUserRole extracts user role from Gin context
func CurrentUserRole(c *gin.Context) string {
	return c.GetString(middleware.ContextRoleKey)
}

// ResolveUser выбирает пользователя, от имени которого выполняется операция.
// Явный userID разрешён только для самого себя или для роли service;
// без явного userID берётся текущий пользователь.
func ResolveUser(c *gin.Context, explicit *int64) (int64, error) {
	current, err := CurrentUserID(c)
	if explicit == nil {
		return current, err
	}
	if err != nil {
		return 0, err
	}
	if *explicit <= 0 {
		return 0, apperror.New(apperror.ErrCodeValidation, "user_id должен быть положительным")
	}
	if *explicit != current && CurrentUserRole(c) != models.RoleService {
		return 0, apperror.ErrForbidden
	}
	return *explicit, nil
}

// ParseIDParam parses positive int64 from URL parameter
func ParseIDParam(c *gin.Context, paramName string) (int64, error) {
	param := c.Param(paramName)
	if param == "" {
		return 0, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("параметр %s отсутствует", paramName))
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("параметр %s должен быть положительным целым числом", paramName))
	}

	return id, nil
}

// OptionalInt64Query reads an optional int64 query parameter.
func OptionalInt64Query(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("параметр %s должен быть целым числом", key))
	}
	return &v, nil
}

// BindJSON binds JSON request body and returns a bad request AppError on failure
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса")
	}
	return nil
}

// RespondSuccess sends a standardized success response
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail передаёт ошибку в middleware.ErrorHandler и прерывает цепочку.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
