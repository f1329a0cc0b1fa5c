package dto

// ── 审计日志 DTO（管理端） ──

// AuthLogListRequest 审计日志查询参数
type AuthLogListRequest struct {
	PaginationRequest
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Action string `form:"action"  binding:"omitempty,max=32"`
}

// AuthLogResponse 审计日志条目
type AuthLogResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action"`
	Result    string `json:"result"`
	Detail    string `json:"detail"`
	IP        string `json:"ip"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/auth_log.go
