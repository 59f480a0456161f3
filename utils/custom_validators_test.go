package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("ChinesePhone", ValidateChinesePhone))
	require.NoError(t, v.RegisterValidation("IDCard", ValidateIDCard))
	return v
}

func TestValidateChinesePhone(t *testing.T) {
	v := newTestValidator(t)

	valid := []string{"13800001234", "19912345678", "15011112222"}
	for _, phone := range valid {
		assert.NoError(t, v.Var(phone, "ChinesePhone"), "phone: %s", phone)
	}

	invalid := []string{
		"12800001234", // 第二位不在 3-9
		"1380000123",  // 位数不足
		"138000012345",
		"23800001234", // 不以 1 开头
		"abcdefghijk",
		"",
	}
	for _, phone := range invalid {
		assert.Error(t, v.Var(phone, "ChinesePhone"), "phone: %s", phone)
	}
}

func TestValidateIDCard(t *testing.T) {
	v := newTestValidator(t)

	valid := []string{
		"110105194912310021", // 18 位纯数字
		"11010519491231002X", // 17 位数字 + X
		"11010519491231002x", // 小写 x 同样接受
		"110105490101678",    // 15 位老身份证
	}
	for _, id := range valid {
		assert.NoError(t, v.Var(id, "IDCard"), "idCard: %s", id)
	}

	invalid := []string{
		"123",
		"1101051949123100",    // 16 位
		"1101051949123100211", // 19 位
		"11010519491231002Y",  // 非法校验字符
		"",
	}
	for _, id := range invalid {
		assert.Error(t, v.Var(id, "IDCard"), "idCard: %s", id)
	}
}

func TestIsValidIDCard(t *testing.T) {
	assert.True(t, IsValidIDCard("11010519491231002X"))
	assert.True(t, IsValidIDCard("110105194912310021"))
	assert.False(t, IsValidIDCard("123"))
	assert.False(t, IsValidIDCard(""))
}
