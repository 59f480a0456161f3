package dependencies

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pbeenigg/star-vast-village/config"
)

// WechatClient 定义了与微信小程序服务端 API 交互的客户端接口。
// - GetSession: 根据前端 wx.login() 获取的 code 换取 openid。
// - GetPhoneNumber: 根据手机号授权码换取用户手机号。
// 登录换取位于关键路径上，对瞬时网络错误做一次有界重试。
type WechatClient interface {
	// GetSession 使用小程序授权码换取 openid 和 session_key。
	// - ctx: 用于控制请求的上下文，例如超时或取消。
	// - code: 一次性临时登录凭证。
	// - 如果微信 API 返回业务错误码，会封装成 error 返回。
	GetSession(ctx context.Context, code string) (openid, sessionKey string, err error)

	// GetPhoneNumber 使用手机号授权码换取用户手机号。
	GetPhoneNumber(ctx context.Context, code string) (phone string, err error)
}

// wechatClient 是 WechatClient 接口的实现。
type wechatClient struct {
	config *config.WechatConfig
	client *http.Client
}

// wechatSessionResponse jscode2session API 的响应结构。
type wechatSessionResponse struct {
	OpenID     string `json:"openid"`      // 用户唯一标识
	SessionKey string `json:"session_key"` // 会话密钥
	UnionID    string `json:"unionid"`     // 开放平台唯一标识符，满足下发条件时返回
	ErrCode    int    `json:"errcode"`     // 错误码 (成功时为 0)
	ErrMsg     string `json:"errmsg"`      // 错误信息 (成功时为 "ok")
}

// wechatTokenResponse 接口调用凭证响应结构。
type wechatTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

// wechatPhoneResponse getuserphonenumber API 的响应结构。
type wechatPhoneResponse struct {
	ErrCode   int    `json:"errcode"`
	ErrMsg    string `json:"errmsg"`
	PhoneInfo struct {
		PhoneNumber     string `json:"phoneNumber"`
		PurePhoneNumber string `json:"purePhoneNumber"`
		CountryCode     string `json:"countryCode"`
	} `json:"phone_info"`
}

// NewWechatClient 创建一个新的 wechatClient 实例。
func NewWechatClient(config *config.WechatConfig) WechatClient {
	return &wechatClient{
		config: config,
		client: &http.Client{
			// 设置合理的 HTTP 请求超时时间
			Timeout: 10 * time.Second,
		},
	}
}

// GetSession 实现接口方法，调用微信 API 获取会话信息。
func (w *wechatClient) GetSession(ctx context.Context, code string) (string, string, error) {
	apiURL := fmt.Sprintf(
		"https://api.weixin.qq.com/sns/jscode2session?appid=%s&secret=%s&js_code=%s&grant_type=authorization_code",
		w.config.AppID, w.config.Secret, code,
	)

	body, err := w.getWithRetry(ctx, apiURL)
	if err != nil {
		return "", "", fmt.Errorf("wechatClient.GetSession: 请求微信 API 失败: %w", err)
	}

	var result wechatSessionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", fmt.Errorf("wechatClient.GetSession: 解析微信 API 响应失败: %w", err)
	}

	// ErrCode 不为 0 表示微信侧拒绝了这个 code（无效、过期、已使用等）
	if result.ErrCode != 0 {
		return "", "", fmt.Errorf("wechatClient.GetSession: 微信 API 业务错误: code=%d, msg=%s", result.ErrCode, result.ErrMsg)
	}

	return result.OpenID, result.SessionKey, nil
}

// GetPhoneNumber 实现接口方法，先获取接口调用凭证，再换取手机号。
func (w *wechatClient) GetPhoneNumber(ctx context.Context, code string) (string, error) {
	tokenURL := fmt.Sprintf(
		"https://api.weixin.qq.com/cgi-bin/token?grant_type=client_credential&appid=%s&secret=%s",
		w.config.AppID, w.config.Secret,
	)
	tokenBody, err := w.getWithRetry(ctx, tokenURL)
	if err != nil {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 获取接口调用凭证失败: %w", err)
	}

	var tokenResult wechatTokenResponse
	if err := json.Unmarshal(tokenBody, &tokenResult); err != nil {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 解析凭证响应失败: %w", err)
	}
	if tokenResult.ErrCode != 0 {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 微信凭证 API 业务错误: code=%d, msg=%s", tokenResult.ErrCode, tokenResult.ErrMsg)
	}

	phoneURL := fmt.Sprintf(
		"https://api.weixin.qq.com/wxa/business/getuserphonenumber?access_token=%s",
		tokenResult.AccessToken,
	)
	payload, _ := json.Marshal(map[string]string{"code": code})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, phoneURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 请求微信 API 失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 读取响应体失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 微信 API 返回非 200 状态码: %d, 响应体: %s", resp.StatusCode, string(body))
	}

	var result wechatPhoneResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 解析响应失败: %w", err)
	}
	if result.ErrCode != 0 {
		return "", fmt.Errorf("wechatClient.GetPhoneNumber: 微信 API 业务错误: code=%d, msg=%s", result.ErrCode, result.ErrMsg)
	}

	return result.PhoneInfo.PurePhoneNumber, nil
}

// getWithRetry 发送 GET 请求并读取响应体，瞬时网络错误重试一次。
// 业务层面的错误码（微信拒绝 code）不重试，重试只针对连不上/超时这类传输层失败。
func (w *wechatClient) getWithRetry(ctx context.Context, apiURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, fmt.Errorf("创建微信 API 请求失败: %w", err)
		}

		resp, err := w.client.Do(req)
		if err != nil {
			lastErr = err
			if isTransientNetworkError(err) && ctx.Err() == nil {
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("读取微信 API 响应体失败: %w", readErr)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("微信 API 返回非 200 状态码: %d, 响应体: %s", resp.StatusCode, string(body))
		}
		return body, nil
	}
	return nil, lastErr
}

// isTransientNetworkError 判断是否为值得重试的瞬时网络错误。
func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
