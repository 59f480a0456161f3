package utils

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// phoneNumberRegex 预编译的中国大陆手机号正则表达式。
	// 规则：以1开头，第二位是3到9之间的数字，后面跟9个数字。
	phoneNumberRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)

	// idCardRegex 预编译的身份证号正则表达式。
	// 支持 15 位纯数字、18 位纯数字、以及 17 位数字加校验字符 X/x。
	idCardRegex = regexp.MustCompile(`(^\d{15}$)|(^\d{18}$)|(^\d{17}(\d|X|x)$)`)
)

// ValidateChinesePhone 校验是否为中国大陆手机号。
func ValidateChinesePhone(fl validator.FieldLevel) bool {
	return phoneNumberRegex.MatchString(fl.Field().String())
}

// ValidateIDCard 校验身份证号格式。
// 只校验位数与校验字符形态，不做地区码/出生日期/校验和计算，
// 与线上审核流程保持一致（最终真实性由人工审核把关）。
func ValidateIDCard(fl validator.FieldLevel) bool {
	return idCardRegex.MatchString(fl.Field().String())
}

// IsValidIDCard 供服务层在绑定之外复用的身份证格式判断。
func IsValidIDCard(idCard string) bool {
	return idCardRegex.MatchString(idCard)
}

// RegisterCustomValidators 将所有自定义的校验函数注册到 Gin 的 validator 引擎中。
// 注册后即可在 DTO 的 binding tag 中使用，例如 `binding:"IDCard"`。
func RegisterCustomValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validations := map[string]validator.Func{
			"ChinesePhone": ValidateChinesePhone, // 手机号校验
			"IDCard":       ValidateIDCard,       // 身份证号校验
		}

		for tag, validation := range validations {
			if err := v.RegisterValidation(tag, validation); err != nil {
				return fmt.Errorf("注册验证器 '%s' 失败: %w", tag, err)
			}
		}
	}
	return nil
}
