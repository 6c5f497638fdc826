package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDValidator проверяет, что параметр с указанным именем - положительное целое число.
// Использование: group.Use(IDValidator("id"))
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " должен быть положительным целым числом",
			})
			return
		}

		c.Next()
	}
}

// ReactableValidator отклоняет незарегистрированные типы объектов до обращения к базе.
func ReactableValidator(paramName string, known func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !known(c.Param(paramName)) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "неизвестный тип объекта для реакций",
			})
			return
		}
		c.Next()
	}
}
