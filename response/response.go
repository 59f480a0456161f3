package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务响应码。与 HTTP 状态码分离，便于客户端按 code 做细分处理。
const (
	CodeSuccess = 200

	ErrCodeClientInvalidInput = 400 // 请求参数无效
	ErrCodeClientUnauthorized = 401 // 未认证或令牌无效
	ErrCodeClientForbidden    = 403 // 权限不足或未通过住户认证
	ErrCodeClientNotFound     = 404 // 资源不存在
	ErrCodeServerInternal     = 500 // 系统内部错误
)

// APIResponse 统一响应信封: {success, code, message, data}
// 与小程序端约定保持一致，所有接口都走这个结构。
type APIResponse[T any] struct {
	Success bool   `json:"success"`        // 是否成功
	Code    int    `json:"code"`           // 业务响应码
	Message string `json:"message"`        // 提示信息
	Data    T      `json:"data,omitempty"` // 业务数据
}

// RespondSuccess 以 200 返回成功响应。
func RespondSuccess[T any](c *gin.Context, data T, message string) {
	if message == "" {
		message = "操作成功"
	}
	c.JSON(http.StatusOK, APIResponse[T]{
		Success: true,
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// RespondError 返回失败响应。
// - httpStatus: HTTP 状态码（400/401/403/404/500）。
// - code: 业务响应码。
// - message: 展示给客户端的信息，内部错误细节不应出现在这里。
func RespondError(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, APIResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	})
}
