package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/response"
)

// ErrorHandlingMiddleware 捕获后续中间件和 handler 的 panic，
// 记录堆栈后返回统一的 500 响应，避免进程退出。
func ErrorHandlingMiddleware(logger *core.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("请求处理发生 panic",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "系统内部错误")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequestLoggerMiddleware 记录每个请求的访问日志。
func RequestLoggerMiddleware(baseLogger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		baseLogger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		)
	}
}

// RequestTimeoutMiddleware 为每个请求的上下文附加超时。
// 超时后下游的数据库/Redis/HTTP 调用会随 ctx 取消。
func RequestTimeoutMiddleware(logger *core.ZapLogger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			logger.Warn("请求处理超时", zap.String("path", c.Request.URL.Path), zap.Duration("timeout", timeout))
			response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "请求处理超时")
			c.Abort()
		}
	}
}
