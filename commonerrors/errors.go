package commonerrors

import "errors"

// 本包集中定义跨层使用的哨兵错误。
// 约定:
// - 仓库层只返回 ErrRepoNotFound 或包装后的底层错误。
// - 服务层返回业务哨兵错误（如 ErrInvalidToken），或在系统异常时返回 ErrSystemError / ErrServiceBusy。
// - 控制器层通过 errors.Is 判断类型并翻译为统一响应，不向客户端泄露内部细节。
var (
	// ErrRepoNotFound 表示仓库层未查询到目标记录。
	ErrRepoNotFound = errors.New("记录不存在")

	// ErrSystemError 表示不可恢复的内部系统错误（数据不一致、依赖异常等）。
	ErrSystemError = errors.New("系统内部错误")

	// ErrServiceBusy 表示服务暂时不可用（数据库/缓存操作失败等），客户端可稍后重试。
	ErrServiceBusy = errors.New("服务繁忙，请稍后重试")

	// ErrInvalidCredential 表示登录凭证缺失或被身份提供方拒绝。
	ErrInvalidCredential = errors.New("登录凭证无效")

	// ErrUnsupportedPlatform 表示该平台没有实现对应的登录换取逻辑。
	ErrUnsupportedPlatform = errors.New("暂不支持该平台登录")

	// ErrInvalidToken 统一覆盖令牌过期、签名无效、类型不匹配、已吊销等情况。
	// 对客户端刻意不区分具体原因，避免泄露令牌校验细节。
	ErrInvalidToken = errors.New("无效的令牌")

	// ErrUnauthenticated 表示请求未携带有效的访问令牌。
	ErrUnauthenticated = errors.New("未认证")

	// ErrForbidden 表示已认证用户无权执行该操作。
	ErrForbidden = errors.New("权限不足")

	// ErrMalformedCiphertext 表示密文信封格式错误（分段数量不对或十六进制非法）。
	ErrMalformedCiphertext = errors.New("无效的加密数据格式")

	// ErrDecryptionFailed 表示密文校验失败，通常意味着密文被篡改或密钥不匹配。
	ErrDecryptionFailed = errors.New("解密失败")

	// ErrValidation 表示请求字段校验失败。
	ErrValidation = errors.New("参数校验失败")
)
