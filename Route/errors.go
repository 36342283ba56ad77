package Route

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"conduit/service"
)

// errorResponse 错误响应体固定为 {"errors": [...]}
func errorResponse(messages ...string) gin.H {
	if len(messages) == 0 {
		messages = []string{"unexpected error"}
	}
	return gin.H{"errors": messages}
}

// abortWithError 将服务层错误分类映射为 HTTP 状态码
func abortWithError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicate):
		status = http.StatusUnprocessableEntity
	}
	c.AbortWithStatusJSON(status, errorResponse(err.Error()))
}

// abortWithValidation 请求体绑定失败统一返回 422
func abortWithValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
}
