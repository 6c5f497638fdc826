package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// AccessTokenParser проверяет access токен (реализуется service.TokenManager).
type AccessTokenParser interface {
	ParseAccess(token string) (int64, string, error)
}

// Identity определяет текущего пользователя по JWT access токену.
// Без заголовка Authorization запрос считается анонимным, невалидный токен - 401.
func Identity(tokens AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			abortWithError(c, apperror.New(apperror.ErrCodeUnauthorized, "ожидается заголовок Authorization: Bearer <token>"))
			return
		}

		userID, role, err := tokens.ParseAccess(raw)
		if err != nil || userID <= 0 {
			abortWithError(c, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "токен невалиден"))
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, gin.H{"error": err.Message})
}
