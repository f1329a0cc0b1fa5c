//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=tatake password=tatake_password dbname=tatake_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Auth{},
		&model.SMSVerification{},
		&model.AuthLog{},
		&model.Task{},
		&model.TaskCompletion{},
		&model.Reward{},
		&model.Redemption{},
		&model.PointsLedger{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func strPtr(s string) *string { return &s }

// setupTestAuth 创建一个游客账号并返回清理函数
func setupTestAuth(t *testing.T) (auth *model.Auth, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	auth = &model.Auth{
		DeviceID: strPtr(fmt.Sprintf("device-%d", time.Now().UnixNano())),
		Nickname: "测试游客",
		IsGuest:  true,
		Role:     "user",
	}
	if err := testDB.WithContext(ctx).Create(auth).Error; err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("user_id = ?", auth.AuthID).Delete(&model.PointsLedger{})
		testDB.Where("user_id = ?", auth.AuthID).Delete(&model.TaskCompletion{})
		testDB.Where("user_id = ?", auth.AuthID).Delete(&model.Redemption{})
		testDB.Where("auth_id = ?", auth.AuthID).Delete(&model.Auth{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback / Commit
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	auth, cleanup := setupTestAuth(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}

	txRepo := repo.WithTx(tx)

	// 事务内写入流水后回滚
	entry := &model.PointsLedger{
		UserID: auth.AuthID,
		Change: 100,
		Type:   "task_complete",
	}
	if err := txRepo.Points.Append(ctx, entry); err != nil {
		tx.Rollback()
		t.Fatalf("事务内写入流水失败: %v", err)
	}

	tx.Rollback()

	balance, err := repo.Points.Balance(ctx, auth.AuthID)
	if err != nil {
		t.Fatalf("查询余额失败: %v", err)
	}
	if balance != 0 {
		t.Errorf("回滚后余额应为 0，得到 %d", balance)
	}
}

func TestTransaction_Commit(t *testing.T) {
	auth, cleanup := setupTestAuth(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}

	txRepo := repo.WithTx(tx)

	entry := &model.PointsLedger{
		UserID: auth.AuthID,
		Change: 100,
		Type:   "task_complete",
	}
	if err := txRepo.Points.Append(ctx, entry); err != nil {
		tx.Rollback()
		t.Fatalf("事务内写入流水失败: %v", err)
	}

	if err := tx.Commit().Error; err != nil {
		t.Fatalf("Commit 失败: %v", err)
	}

	balance, err := repo.Points.Balance(ctx, auth.AuthID)
	if err != nil {
		t.Fatalf("查询余额失败: %v", err)
	}
	if balance != 100 {
		t.Errorf("提交后余额应为 100，得到 %d", balance)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Unique Constraints
// ═══════════════════════════════════════════════════════════

func TestAuth_UniquePhone(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	phone := fmt.Sprintf("138%08d", time.Now().UnixNano()%100000000)

	first := &model.Auth{Phone: strPtr(phone), Role: "user"}
	if err := repo.Auth.Create(ctx, first); err != nil {
		t.Fatalf("创建第一个账号失败: %v", err)
	}
	defer testDB.Where("auth_id = ?", first.AuthID).Delete(&model.Auth{})

	second := &model.Auth{Phone: strPtr(phone), Role: "user"}
	err := repo.Auth.Create(ctx, second)
	if err == nil {
		testDB.Where("auth_id = ?", second.AuthID).Delete(&model.Auth{})
		t.Fatal("同一手机号重复注册应违反唯一约束")
	}
}

func TestTaskCompletion_UniquePerDay(t *testing.T) {
	auth, cleanup := setupTestAuth(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	task := &model.Task{Title: "签到", Type: "daily", Points: 5, IsActive: true}
	if err := testDB.WithContext(ctx).Create(task).Error; err != nil {
		t.Fatalf("创建任务失败: %v", err)
	}
	defer testDB.Where("task_id = ?", task.TaskID).Delete(&model.Task{})

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	first := &model.TaskCompletion{
		UserID:      auth.AuthID,
		TaskID:      task.TaskID,
		CompletedOn: day,
		Points:      5,
	}
	if err := repo.Task.CreateCompletion(ctx, first); err != nil {
		t.Fatalf("第一次完成记录失败: %v", err)
	}

	second := &model.TaskCompletion{
		UserID:      auth.AuthID,
		TaskID:      task.TaskID,
		CompletedOn: day,
		Points:      5,
	}
	if err := repo.Task.CreateCompletion(ctx, second); err == nil {
		t.Fatal("同一天重复完成应违反唯一约束")
	}

	done, err := repo.Task.HasCompletedOn(ctx, auth.AuthID, task.TaskID, day)
	if err != nil {
		t.Fatalf("HasCompletedOn 失败: %v", err)
	}
	if !done {
		t.Error("当日完成记录应可查到")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Guarded Stock Decrement
// ═══════════════════════════════════════════════════════════

func TestReward_DecrementStock(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	reward := &model.Reward{Title: "限量周边", Cost: 50, Stock: 1, IsActive: true}
	if err := testDB.WithContext(ctx).Create(reward).Error; err != nil {
		t.Fatalf("创建奖励失败: %v", err)
	}
	defer testDB.Where("reward_id = ?", reward.RewardID).Delete(&model.Reward{})

	ok, err := repo.Reward.DecrementStock(ctx, reward.RewardID)
	if err != nil {
		t.Fatalf("第一次扣库存失败: %v", err)
	}
	if !ok {
		t.Fatal("库存为 1 时第一次扣减应成功")
	}

	ok, err = repo.Reward.DecrementStock(ctx, reward.RewardID)
	if err != nil {
		t.Fatalf("第二次扣库存失败: %v", err)
	}
	if ok {
		t.Fatal("库存为 0 时扣减应失败")
	}

	final, err := repo.Reward.GetByID(ctx, reward.RewardID)
	if err != nil {
		t.Fatalf("查询奖励失败: %v", err)
	}
	if final.Stock != 0 {
		t.Errorf("库存应为 0，得到 %d", final.Stock)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Points Balance
// ═══════════════════════════════════════════════════════════

func TestPoints_BalanceIsLedgerSum(t *testing.T) {
	auth, cleanup := setupTestAuth(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	for _, change := range []int{10, 5, -3} {
		entryType := "task_complete"
		if change < 0 {
			entryType = "reward_redeem"
		}
		if err := repo.Points.Append(ctx, &model.PointsLedger{
			UserID: auth.AuthID,
			Change: change,
			Type:   entryType,
		}); err != nil {
			t.Fatalf("写入流水失败: %v", err)
		}
	}

	balance, err := repo.Points.Balance(ctx, auth.AuthID)
	if err != nil {
		t.Fatalf("查询余额失败: %v", err)
	}
	if balance != 12 {
		t.Errorf("余额应为 12，得到 %d", balance)
	}

	// 无流水用户余额为 0
	other, otherCleanup := setupTestAuth(t)
	defer otherCleanup()
	balance, err = repo.Points.Balance(ctx, other.AuthID)
	if err != nil {
		t.Fatalf("查询空余额失败: %v", err)
	}
	if balance != 0 {
		t.Errorf("无流水用户余额应为 0，得到 %d", balance)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: SMS Verification Lookup
// ═══════════════════════════════════════════════════════════

func TestSMSVerification_LatestPending(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	phone := fmt.Sprintf("139%08d", time.Now().UnixNano()%100000000)

	older := &model.SMSVerification{
		Phone:     phone,
		Scene:     "register",
		CodeHash:  "$2a$10$placeholder",
		ExpiresAt: time.Now().Add(5 * time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Minute),
	}
	if err := repo.SMS.Create(ctx, older); err != nil {
		t.Fatalf("创建旧记录失败: %v", err)
	}
	newer := &model.SMSVerification{
		Phone:     phone,
		Scene:     "register",
		CodeHash:  "$2a$10$placeholder2",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
	if err := repo.SMS.Create(ctx, newer); err != nil {
		t.Fatalf("创建新记录失败: %v", err)
	}
	defer testDB.Where("phone = ?", phone).Delete(&model.SMSVerification{})

	got, err := repo.SMS.GetLatestPending(ctx, phone, "register")
	if err != nil {
		t.Fatalf("GetLatestPending 失败: %v", err)
	}
	if got.SMSVerificationID != newer.SMSVerificationID {
		t.Error("应返回最新一条未验证记录")
	}

	// 标记验证后不再是 pending
	now := time.Now()
	got.Verified = true
	got.VerifiedAt = &now
	if err := repo.SMS.Update(ctx, got); err != nil {
		t.Fatalf("更新记录失败: %v", err)
	}
	older.Verified = true
	older.VerifiedAt = &now
	if err := repo.SMS.Update(ctx, older); err != nil {
		t.Fatalf("更新旧记录失败: %v", err)
	}

	_, err = repo.SMS.GetLatestPending(ctx, phone, "register")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("全部已验证后应返回 ErrRecordNotFound，得到: %v", err)
	}

	// 当日计数跨场景统计
	count, err := repo.SMS.CountSince(ctx, phone, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSince 失败: %v", err)
	}
	if count != 2 {
		t.Errorf("期望计数 2，得到 %d", count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Auth Log Filters
// ═══════════════════════════════════════════════════════════

func TestAuthLog_ListWithFilters(t *testing.T) {
	auth, cleanup := setupTestAuth(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	for _, action := range []string{"sms_send", "sms_verify", "logout"} {
		if err := repo.AuthLog.Create(ctx, &model.AuthLog{
			UserID: &auth.AuthID,
			Action: action,
			Result: "success",
			IP:     "127.0.0.1",
		}); err != nil {
			t.Fatalf("写入审计日志失败: %v", err)
		}
	}
	defer testDB.Where("user_id = ?", auth.AuthID).Delete(&model.AuthLog{})

	logs, total, err := repo.AuthLog.List(ctx, &repository.AuthLogFilters{UserID: auth.AuthID}, 0, 10)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 || len(logs) != 3 {
		t.Errorf("期望 3 条日志，got total=%d len=%d", total, len(logs))
	}

	logs, total, err = repo.AuthLog.List(ctx, &repository.AuthLogFilters{
		UserID: auth.AuthID,
		Action: "logout",
	}, 0, 10)
	if err != nil {
		t.Fatalf("带 action 过滤的 List 失败: %v", err)
	}
	if total != 1 || len(logs) != 1 || logs[0].Action != "logout" {
		t.Errorf("action 过滤结果不符: total=%d len=%d", total, len(logs))
	}
}
