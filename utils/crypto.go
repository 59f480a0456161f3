package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/pbeenigg/star-vast-village/commonerrors"
)

// hkdfInfo 密钥派生的用途标识，区分同一口令在不同场景下派生的密钥。
const hkdfInfo = "village-pii-encryption-v1"

// Encryptor 敏感字段（实名、身份证号）的对称加密工具。
// - 密钥在构造时经 HKDF-SHA256 从配置口令派生一次并缓存，口令本身不直接作为密钥。
// - 采用 AES-256-GCM：认证加密，密文被篡改会在解密时报错，而不是静默返回垃圾数据。
// - 信封格式为 "nonceHex:cipherHex"，每条密文自带随机 nonce，可独立解密。
// 无内部可变状态，可被并发使用。
type Encryptor struct {
	aead cipher.AEAD
}

// NewEncryptor 根据配置口令创建加密工具。
func NewEncryptor(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, fmt.Errorf("加密口令不能为空")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("派生加密密钥失败: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("创建 AES 密码器失败: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("创建 GCM 模式失败: %w", err)
	}
	return &Encryptor{aead: aead}, nil
}

// Encrypt 加密明文，返回 "nonceHex:cipherHex" 信封。
// 空串直接返回空串，避免为缺省的可选字段生成无意义的信封。
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("生成随机 nonce 失败: %w", err)
	}

	ciphertext := e.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt 解密信封，返回明文。
// - 空串返回空串。
// - 分段数量不为 2、或十六进制非法、或 nonce 长度不符，返回 ErrMalformedCiphertext。
// - GCM 认证失败（密文被篡改或密钥不匹配），返回 ErrDecryptionFailed。
func (e *Encryptor) Decrypt(envelope string) (string, error) {
	if envelope == "" {
		return "", nil
	}

	parts := strings.Split(envelope, ":")
	if len(parts) != 2 {
		return "", commonerrors.ErrMalformedCiphertext
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != e.aead.NonceSize() {
		return "", commonerrors.ErrMalformedCiphertext
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", commonerrors.ErrMalformedCiphertext
	}

	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", commonerrors.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// MaskPhone 脱敏手机号: 138****1234。非 11 位的号码原样返回。
func MaskPhone(phone string) string {
	if len(phone) != 11 {
		return phone
	}
	return phone[:3] + "****" + phone[7:]
}

// MaskIDCard 脱敏身份证号: 前 6 位 + 8 个星号 + 后 4 位。过短的原样返回。
func MaskIDCard(idCard string) string {
	if len(idCard) < 15 {
		return idCard
	}
	return idCard[:6] + "********" + idCard[len(idCard)-4:]
}

// MaskName 脱敏姓名: 保留首尾字符，中间以星号代替；两字姓名只保留首字。
// 按 rune 处理以兼容中文姓名。
func MaskName(name string) string {
	runes := []rune(name)
	switch {
	case len(runes) <= 1:
		return name
	case len(runes) == 2:
		return string(runes[0]) + "*"
	default:
		return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
	}
}
