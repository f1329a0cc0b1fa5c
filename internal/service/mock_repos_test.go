package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/repository"
)

// ── Mock AuthRepository ──

type mockAuthRepo struct {
	accounts map[string]*model.Auth
	seq      int
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{accounts: make(map[string]*model.Auth)}
}

func (m *mockAuthRepo) Create(_ context.Context, auth *model.Auth) error {
	if auth.AuthID == "" {
		m.seq++
		auth.AuthID = fmt.Sprintf("auth-%d", m.seq)
	}
	if auth.CreatedAt.IsZero() {
		auth.CreatedAt = time.Now()
	}
	m.accounts[auth.AuthID] = auth
	return nil
}

func (m *mockAuthRepo) GetByID(_ context.Context, id string) (*model.Auth, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthRepo) GetByWeChatOpenID(_ context.Context, openID string) (*model.Auth, error) {
	for _, a := range m.accounts {
		if a.WeChatOpenID != nil && *a.WeChatOpenID == openID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthRepo) GetByPhone(_ context.Context, phone string) (*model.Auth, error) {
	for _, a := range m.accounts {
		if a.Phone != nil && *a.Phone == phone {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthRepo) GetByDeviceID(_ context.Context, deviceID string) (*model.Auth, error) {
	for _, a := range m.accounts {
		if a.DeviceID != nil && *a.DeviceID == deviceID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuthRepo) Update(_ context.Context, auth *model.Auth) error {
	if _, ok := m.accounts[auth.AuthID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.accounts[auth.AuthID] = auth
	return nil
}

// ── Mock AuthLogRepository ──

type mockAuthLogRepo struct {
	logs []*model.AuthLog
	seq  int
}

func newMockAuthLogRepo() *mockAuthLogRepo {
	return &mockAuthLogRepo{}
}

func (m *mockAuthLogRepo) Create(_ context.Context, entry *model.AuthLog) error {
	if entry.AuthLogID == "" {
		m.seq++
		entry.AuthLogID = fmt.Sprintf("log-%d", m.seq)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.logs = append(m.logs, entry)
	return nil
}

func (m *mockAuthLogRepo) List(_ context.Context, filters *repository.AuthLogFilters, offset, limit int) ([]model.AuthLog, int64, error) {
	var matched []model.AuthLog
	// 与真实实现一致：按写入时间倒序
	for i := len(m.logs) - 1; i >= 0; i-- {
		entry := m.logs[i]
		if filters != nil && filters.Action != "" && entry.Action != filters.Action {
			continue
		}
		if filters != nil && filters.UserID != "" {
			if entry.UserID == nil || *entry.UserID != filters.UserID {
				continue
			}
		}
		matched = append(matched, *entry)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// lastLog 最近一条审计日志（断言用）
func (m *mockAuthLogRepo) lastLog() *model.AuthLog {
	if len(m.logs) == 0 {
		return nil
	}
	return m.logs[len(m.logs)-1]
}

// ── Mock SMSVerificationRepository ──

type mockSMSRepo struct {
	records []*model.SMSVerification
	seq     int
}

func newMockSMSRepo() *mockSMSRepo {
	return &mockSMSRepo{}
}

func (m *mockSMSRepo) Create(_ context.Context, v *model.SMSVerification) error {
	if v.SMSVerificationID == "" {
		m.seq++
		v.SMSVerificationID = fmt.Sprintf("sms-%d", m.seq)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	m.records = append(m.records, v)
	return nil
}

func (m *mockSMSRepo) GetLatest(_ context.Context, phone, scene string) (*model.SMSVerification, error) {
	var latest *model.SMSVerification
	for _, r := range m.records {
		if r.Phone != phone || r.Scene != scene {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockSMSRepo) GetLatestPending(_ context.Context, phone, scene string) (*model.SMSVerification, error) {
	var latest *model.SMSVerification
	for _, r := range m.records {
		if r.Phone != phone || r.Scene != scene || r.Verified {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockSMSRepo) CountSince(_ context.Context, phone string, since time.Time) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.Phone == phone && !r.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockSMSRepo) Update(_ context.Context, v *model.SMSVerification) error {
	for i, r := range m.records {
		if r.SMSVerificationID == v.SMSVerificationID {
			m.records[i] = v
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks       map[string]*model.Task
	completions []*model.TaskCompletion
	seq         int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) addTask(task *model.Task) {
	m.tasks[task.TaskID] = task
}

func (m *mockTaskRepo) ListActive(_ context.Context) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.IsActive {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) CreateCompletion(_ context.Context, c *model.TaskCompletion) error {
	for _, existing := range m.completions {
		if existing.UserID == c.UserID && existing.TaskID == c.TaskID && existing.CompletedOn.Equal(c.CompletedOn) {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.TaskCompletionID == "" {
		m.seq++
		c.TaskCompletionID = fmt.Sprintf("tc-%d", m.seq)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m.completions = append(m.completions, c)
	return nil
}

func (m *mockTaskRepo) HasCompletedOn(_ context.Context, userID, taskID string, day time.Time) (bool, error) {
	for _, c := range m.completions {
		if c.UserID == userID && c.TaskID == taskID && c.CompletedOn.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepo) HasCompletedEver(_ context.Context, userID, taskID string) (bool, error) {
	for _, c := range m.completions {
		if c.UserID == userID && c.TaskID == taskID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepo) ListCompletedTaskIDsOn(_ context.Context, userID string, day time.Time) ([]string, error) {
	var ids []string
	for _, c := range m.completions {
		if c.UserID == userID && c.CompletedOn.Equal(day) {
			ids = append(ids, c.TaskID)
		}
	}
	return ids, nil
}

func (m *mockTaskRepo) ListCompletedTaskIDsEver(_ context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range m.completions {
		if c.UserID == userID && !seen[c.TaskID] {
			seen[c.TaskID] = true
			ids = append(ids, c.TaskID)
		}
	}
	return ids, nil
}

// ── Mock RewardRepository ──

type mockRewardRepo struct {
	rewards     map[string]*model.Reward
	redemptions []*model.Redemption
	seq         int
}

func newMockRewardRepo() *mockRewardRepo {
	return &mockRewardRepo{rewards: make(map[string]*model.Reward)}
}

func (m *mockRewardRepo) addReward(reward *model.Reward) {
	m.rewards[reward.RewardID] = reward
}

func (m *mockRewardRepo) ListActive(_ context.Context) ([]model.Reward, error) {
	var result []model.Reward
	for _, r := range m.rewards {
		if r.IsActive {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRewardRepo) GetByID(_ context.Context, id string) (*model.Reward, error) {
	if r, ok := m.rewards[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRewardRepo) DecrementStock(_ context.Context, rewardID string) (bool, error) {
	r, ok := m.rewards[rewardID]
	if !ok {
		return false, nil
	}
	if r.Stock <= 0 {
		return false, nil
	}
	r.Stock--
	return true, nil
}

func (m *mockRewardRepo) CreateRedemption(_ context.Context, redemption *model.Redemption) error {
	if redemption.RedemptionID == "" {
		m.seq++
		redemption.RedemptionID = fmt.Sprintf("rd-%d", m.seq)
	}
	if redemption.CreatedAt.IsZero() {
		redemption.CreatedAt = time.Now()
	}
	m.redemptions = append(m.redemptions, redemption)
	return nil
}

// ── Mock PointsRepository ──

type mockPointsRepo struct {
	entries []*model.PointsLedger
	seq     int
}

func newMockPointsRepo() *mockPointsRepo {
	return &mockPointsRepo{}
}

func (m *mockPointsRepo) Append(_ context.Context, entry *model.PointsLedger) error {
	if entry.PointsLedgerID == "" {
		m.seq++
		entry.PointsLedgerID = fmt.Sprintf("pl-%d", m.seq)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockPointsRepo) Balance(_ context.Context, userID string) (int64, error) {
	var balance int64
	for _, e := range m.entries {
		if e.UserID == userID {
			balance += int64(e.Change)
		}
	}
	return balance, nil
}

func (m *mockPointsRepo) List(_ context.Context, userID string, offset, limit int) ([]model.PointsLedger, int64, error) {
	var matched []model.PointsLedger
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].UserID == userID {
			matched = append(matched, *m.entries[i])
		}
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── 测试辅助 ──

// testRepos 各 mock 仓储的直接句柄，便于测试中播种和断言
type testRepos struct {
	auth    *mockAuthRepo
	authLog *mockAuthLogRepo
	sms     *mockSMSRepo
	task    *mockTaskRepo
	reward  *mockRewardRepo
	points  *mockPointsRepo
}

// newTestRepos 组装全 mock 仓储聚合
// db 字段留空，BeginTx 返回 nil 事务，服务层对 nil 事务直接跳过提交 / 回滚。
func newTestRepos() (*repository.Repository, *testRepos) {
	tr := &testRepos{
		auth:    newMockAuthRepo(),
		authLog: newMockAuthLogRepo(),
		sms:     newMockSMSRepo(),
		task:    newMockTaskRepo(),
		reward:  newMockRewardRepo(),
		points:  newMockPointsRepo(),
	}
	repo := &repository.Repository{
		Auth:    tr.auth,
		AuthLog: tr.authLog,
		SMS:     tr.sms,
		Task:    tr.task,
		Reward:  tr.reward,
		Points:  tr.points,
	}
	return repo, tr
}

// seedSMSCode 直接播种一条待验证的验证码记录（MinCost 哈希加速测试）
func seedSMSCode(t *testing.T, tr *testRepos, phone, code, scene string, createdAt time.Time) *model.SMSVerification {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成测试验证码哈希失败: %v", err)
	}
	record := &model.SMSVerification{
		Phone:     phone,
		CodeHash:  string(hash),
		Scene:     scene,
		ExpiresAt: createdAt.Add(smsCodeTTL),
		CreatedAt: createdAt,
	}
	if err := tr.sms.Create(context.Background(), record); err != nil {
		t.Fatalf("播种验证码记录失败: %v", err)
	}
	return record
}

// [自证通过] internal/service/mock_repos_test.go
