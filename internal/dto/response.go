package dto

// ── 认证模块响应 ──

// AccountResponse 账号信息（脱敏：手机号打码后返回）
type AccountResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsGuest   bool   `json:"is_guest"`
	CreatedAt string `json:"created_at"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // Access Token 有效期（秒）
	User         AccountResponse `json:"user"`
}

// UserInfoResponse 用户信息响应（GET /auth/user-info）
type UserInfoResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsGuest   bool   `json:"is_guest"`
	Points    int64  `json:"points"` // 当前积分余额
	CreatedAt string `json:"created_at"`
}

// SMSSendResponse 验证码发送响应
type SMSSendResponse struct {
	ExpiresIn int `json:"expires_in"` // 验证码有效期（秒）
	ResendIn  int `json:"resend_in"`  // 重发冷却（秒）
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
