package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/core"
)

// COSClientInterface 定义了对象存储客户端需要实现的方法。
// 当前承载两类上传：用户头像，以及帖子/报修单的图片附件。
type COSClientInterface interface {
	// UploadFile 从 io.Reader 上传文件，并返回其公开可访问的 URL
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	// UploadUserAvatar 上传用户头像，对象键按用户维度归档，返回公开访问 URL
	UploadUserAvatar(ctx context.Context, userID string, fileName string, reader io.Reader, size int64) (string, error)
	// UploadImage 上传业务图片（帖子配图、报修现场照片等），category 决定对象键前缀
	UploadImage(ctx context.Context, category string, fileName string, reader io.Reader, size int64) (string, error)
	// DeleteObject 从 COS 删除一个对象
	DeleteObject(ctx context.Context, objectKey string) error
}

type cosClient struct {
	client              *cos.Client
	publicAccessURLBase *url.URL // 用于拼接最终对象公开访问URL的基础部分
	logger              *core.ZapLogger
}

// InitCOS 初始化腾讯云 COS 客户端
func InitCOS(cfg *config.COSConfig, logger *core.ZapLogger) (COSClientInterface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("COS 配置不能为nil")
	}
	if cfg.SecretID == "" || cfg.SecretKey == "" || cfg.BucketName == "" || cfg.AppID == "" || cfg.Region == "" {
		logger.Error("COS 配置不完整")
		return nil, fmt.Errorf("COS 配置不完整，缺少关键字段 (SecretID, SecretKey, BucketName, AppID, Region)")
	}

	sdkBucketURLStr := fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", cfg.BucketName, cfg.AppID, cfg.Region)
	sdkURL, err := url.Parse(sdkBucketURLStr)
	if err != nil {
		return nil, fmt.Errorf("解析 COS 存储桶 URL '%s' 失败: %w", sdkBucketURLStr, err)
	}

	// 配置了 BaseURL 时（CDN 或自定义域名），公开访问 URL 用它拼接；
	// 否则公有读桶的标准访问 URL 与 SDK 操作 URL 一致。
	publicURLBase := sdkURL
	if cfg.BaseURL != "" {
		pu, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("解析 COS 公共访问 BaseURL '%s' 失败: %w", cfg.BaseURL, err)
		}
		publicURLBase = pu
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: sdkURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})

	logger.Info("COS 客户端初始化成功",
		zap.String("存储桶名称", cfg.BucketName),
		zap.String("地域", cfg.Region),
		zap.String("公共访问基础URL", publicURLBase.String()),
	)

	return &cosClient{
		client:              client,
		publicAccessURLBase: publicURLBase,
		logger:              logger,
	}, nil
}

// buildPublicObjectURL 构建对象的完整公共访问URL
func (c *cosClient) buildPublicObjectURL(objectKey string) string {
	basePath := c.publicAccessURLBase.Path
	if basePath != "/" && !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	trimmedObjectKey := strings.TrimPrefix(objectKey, "/")

	finalURL := *c.publicAccessURLBase
	finalURL.Path = basePath + trimmedObjectKey
	return finalURL.String()
}

// UploadFile 从 io.Reader 上传文件，并返回其公开可访问的 URL
func (c *cosClient) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}

	resp, err := c.client.Object.Put(ctx, objectKey, reader, opts)
	if err != nil {
		c.logger.Error("COS 文件上传 API 调用失败", zap.String("对象键", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传文件 '%s' 到 COS 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errMsgBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("COS 文件上传失败，状态码: %d, 响应: %s", resp.StatusCode, string(errMsgBytes))
	}

	publicURL := c.buildPublicObjectURL(objectKey)
	c.logger.Info("COS 文件上传成功", zap.String("对象键", objectKey), zap.String("公开访问URL", publicURL))
	return publicURL, nil
}

// UploadUserAvatar 上传用户头像，返回头像的公开可访问URL
func (c *cosClient) UploadUserAvatar(ctx context.Context, userID string, fileName string, reader io.Reader, size int64) (string, error) {
	ext := filepath.Ext(fileName)
	uniqueFileName := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.New().String(), ext)
	objectKey := fmt.Sprintf("avatars/%s/%s", userID, uniqueFileName)
	return c.UploadFile(ctx, objectKey, reader, size, contentTypeForExt(ext))
}

// UploadImage 上传业务图片，category 形如 posts、repairs，用作对象键前缀
func (c *cosClient) UploadImage(ctx context.Context, category string, fileName string, reader io.Reader, size int64) (string, error) {
	ext := filepath.Ext(fileName)
	uniqueFileName := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.New().String(), ext)
	objectKey := fmt.Sprintf("images/%s/%s", strings.Trim(category, "/"), uniqueFileName)
	return c.UploadFile(ctx, objectKey, reader, size, contentTypeForExt(ext))
}

// DeleteObject 从COS删除一个对象
func (c *cosClient) DeleteObject(ctx context.Context, objectKey string) error {
	resp, err := c.client.Object.Delete(ctx, objectKey)
	if err != nil {
		c.logger.Error("COS 对象删除 API 调用失败", zap.String("对象键", objectKey), zap.Error(err))
		return fmt.Errorf("从 COS 删除对象 '%s' 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		errMsgBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("COS 对象删除失败，状态码: %d, 响应: %s", resp.StatusCode, string(errMsgBytes))
	}
	c.logger.Info("COS 对象删除成功", zap.String("对象键", objectKey))
	return nil
}

// contentTypeForExt 根据扩展名推断图片 Content-Type。
func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
