package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbeenigg/star-vast-village/commonerrors"
)

func newTestEncryptor(t *testing.T) *Encryptor {
	t.Helper()
	enc, err := NewEncryptor("unit-test-secret")
	require.NoError(t, err)
	return enc
}

func TestNewEncryptor_EmptySecret(t *testing.T) {
	_, err := NewEncryptor("")
	assert.Error(t, err)
}

func TestEncryptor_RoundTrip(t *testing.T) {
	enc := newTestEncryptor(t)

	cases := []string{
		"张三",
		"110105194912310021",
		"plain ascii",
		"含分隔符:的明文:也要能还原",
		"emoji 🏠 和换行\n也一样",
	}
	for _, plaintext := range cases {
		envelope, err := enc.Encrypt(plaintext)
		require.NoError(t, err)
		assert.Contains(t, envelope, ":")

		decrypted, err := enc.Decrypt(envelope)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptor_EmptyStringPassthrough(t *testing.T) {
	enc := newTestEncryptor(t)

	envelope, err := enc.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", envelope)

	plaintext, err := enc.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestEncryptor_EnvelopeIsRandomized(t *testing.T) {
	enc := newTestEncryptor(t)

	first, err := enc.Encrypt("张三")
	require.NoError(t, err)
	second, err := enc.Encrypt("张三")
	require.NoError(t, err)

	// 每次加密使用新的随机 nonce，同一明文不应产生相同信封
	assert.NotEqual(t, first, second)
}

func TestEncryptor_MalformedEnvelope(t *testing.T) {
	enc := newTestEncryptor(t)

	cases := []string{
		"not-an-envelope",
		"onlyonepart",
		"a:b:c",
		"zzzz:abcd",     // 非法十六进制 nonce
		"abcd:zzzz",     // 非法十六进制密文
		"abcd:deadbeef", // nonce 长度不符
	}
	for _, envelope := range cases {
		_, err := enc.Decrypt(envelope)
		assert.ErrorIs(t, err, commonerrors.ErrMalformedCiphertext, "envelope: %s", envelope)
	}
}

func TestEncryptor_TamperedCiphertext(t *testing.T) {
	enc := newTestEncryptor(t)

	envelope, err := enc.Encrypt("110105194912310021")
	require.NoError(t, err)

	// 翻转密文部分的最后一个十六进制字符
	last := envelope[len(envelope)-1]
	var replacement byte = 'a'
	if last == 'a' {
		replacement = 'b'
	}
	tampered := envelope[:len(envelope)-1] + string(replacement)

	_, err = enc.Decrypt(tampered)
	assert.ErrorIs(t, err, commonerrors.ErrDecryptionFailed)
}

func TestEncryptor_DifferentSecretsCannotDecrypt(t *testing.T) {
	enc := newTestEncryptor(t)
	other, err := NewEncryptor("another-secret")
	require.NoError(t, err)

	envelope, err := enc.Encrypt("张三")
	require.NoError(t, err)

	_, err = other.Decrypt(envelope)
	assert.ErrorIs(t, err, commonerrors.ErrDecryptionFailed)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "138****1234", MaskPhone("13800001234"))
	// 非 11 位的号码原样返回
	assert.Equal(t, "12345", MaskPhone("12345"))
	assert.Equal(t, "", MaskPhone(""))
}

func TestMaskIDCard(t *testing.T) {
	assert.Equal(t, "110105********0021", MaskIDCard("110105194912310021"))
	assert.Equal(t, "110105********002X", MaskIDCard("11010519491231002X"))
	// 15 位老身份证同样脱敏
	assert.Equal(t, "110105********1678", MaskIDCard("110105490101678"))
	// 过短的原样返回
	assert.Equal(t, "1234", MaskIDCard("1234"))
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "张*", MaskName("张三"))
	assert.Equal(t, "欧*菲", MaskName("欧阳菲"))
	assert.Equal(t, "欧**娜", MaskName("欧阳娜娜"))
	assert.Equal(t, "张", MaskName("张"))
	assert.Equal(t, "", MaskName(""))
}
