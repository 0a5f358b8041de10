package validator

import (
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phoneRe = regexp.MustCompile(`^\d{10}$|^\d{11}$`)

// IsPhone 自定义校验：电话号码必须是 10 或 11 位数字
func IsPhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}

// IsWebsite accepts absolute http(s) URLs. Empty values are handled by
// omitempty on the binding tag, not here.
func IsWebsite(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
