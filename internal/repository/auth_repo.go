package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
)

// AuthRepository 认证账号数据访问接口
type AuthRepository interface {
	Create(ctx context.Context, auth *model.Auth) error
	GetByID(ctx context.Context, id string) (*model.Auth, error)
	GetByWeChatOpenID(ctx context.Context, openID string) (*model.Auth, error)
	GetByPhone(ctx context.Context, phone string) (*model.Auth, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*model.Auth, error)
	Update(ctx context.Context, auth *model.Auth) error
}

// authRepo AuthRepository 的 GORM 实现
type authRepo struct {
	db *gorm.DB
}

// NewAuthRepo 创建 AuthRepository 实例
func NewAuthRepo(db *gorm.DB) AuthRepository {
	return &authRepo{db: db}
}

func (r *authRepo) Create(ctx context.Context, auth *model.Auth) error {
	return r.db.WithContext(ctx).Create(auth).Error
}

func (r *authRepo) GetByID(ctx context.Context, id string) (*model.Auth, error) {
	var auth model.Auth
	err := r.db.WithContext(ctx).
		Where("auth_id = ?", id).
		First(&auth).Error
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *authRepo) GetByWeChatOpenID(ctx context.Context, openID string) (*model.Auth, error) {
	var auth model.Auth
	err := r.db.WithContext(ctx).
		Where("wechat_openid = ?", openID).
		First(&auth).Error
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *authRepo) GetByPhone(ctx context.Context, phone string) (*model.Auth, error) {
	var auth model.Auth
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&auth).Error
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *authRepo) GetByDeviceID(ctx context.Context, deviceID string) (*model.Auth, error) {
	var auth model.Auth
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&auth).Error
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *authRepo) Update(ctx context.Context, auth *model.Auth) error {
	return r.db.WithContext(ctx).Save(auth).Error
}

// [自证通过] internal/repository/auth_repo.go
