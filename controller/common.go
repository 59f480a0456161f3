package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/response"
)

// respondServiceError 把服务层的哨兵错误翻译为统一响应。
// 控制器只通过 errors.Is 识别错误类别，内部错误细节不下发到客户端。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientNotFound, commonerrors.ErrRepoNotFound.Error())
	case errors.Is(err, commonerrors.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, commonerrors.ErrValidation.Error())
	case errors.Is(err, commonerrors.ErrInvalidCredential):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, commonerrors.ErrInvalidCredential.Error())
	case errors.Is(err, commonerrors.ErrUnsupportedPlatform):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, commonerrors.ErrUnsupportedPlatform.Error())
	case errors.Is(err, commonerrors.ErrInvalidToken), errors.Is(err, commonerrors.ErrUnauthenticated):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, commonerrors.ErrInvalidToken.Error())
	case errors.Is(err, commonerrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientForbidden, commonerrors.ErrForbidden.Error())
	case errors.Is(err, commonerrors.ErrMalformedCiphertext), errors.Is(err, commonerrors.ErrDecryptionFailed):
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "敏感数据处理失败")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, commonerrors.ErrSystemError.Error())
	}
}

// parseUintParam 解析路径参数中的数字 ID。
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 "+name+" 参数")
		return 0, false
	}
	return uint(value), true
}
