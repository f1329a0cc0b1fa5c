package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/dto"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/internal/model"
	"github.com/Arthur-Ziegler/tatake-backend-251020-sub000/pkg/errs"
)

func setupTestRewardService() (RewardService, *testRepos) {
	repo, tr := newTestRepos()
	svc := NewRewardService(repo, zap.NewNop())
	return svc, tr
}

// seedPoints 为用户播种积分余额
func seedPoints(tr *testRepos, userID string, amount int) {
	_ = tr.points.Append(context.Background(), &model.PointsLedger{
		UserID: userID,
		Change: amount,
		Type:   "task_complete",
	})
}

func TestRewardService_Redeem_Success(t *testing.T) {
	svc, tr := setupTestRewardService()
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "周边贴纸", Cost: 50, Stock: 2, IsActive: true})
	seedPoints(tr, "user-1", 100)

	resp, err := svc.Redeem(context.Background(), "user-1", false, "reward-1")
	if err != nil {
		t.Fatalf("兑换失败: %v", err)
	}
	if resp.Cost != 50 {
		t.Errorf("期望消耗 50 积分，实际 %d", resp.Cost)
	}
	if resp.Balance != 50 {
		t.Errorf("期望兑换后余额 50，实际 %d", resp.Balance)
	}

	if tr.reward.rewards["reward-1"].Stock != 1 {
		t.Errorf("期望库存扣减至 1，实际 %d", tr.reward.rewards["reward-1"].Stock)
	}
	if len(tr.reward.redemptions) != 1 {
		t.Fatalf("期望 1 条兑换记录，实际 %d", len(tr.reward.redemptions))
	}

	// 负向流水关联兑换记录
	last := tr.points.entries[len(tr.points.entries)-1]
	if last.Change != -50 || last.Type != "reward_redeem" {
		t.Errorf("流水内容不符: %+v", last)
	}
	if last.RefID == nil || *last.RefID != tr.reward.redemptions[0].RedemptionID {
		t.Error("流水应关联兑换记录 ID")
	}
}

func TestRewardService_Redeem_GuestForbidden(t *testing.T) {
	svc, tr := setupTestRewardService()
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "周边贴纸", Cost: 50, Stock: 2, IsActive: true})
	seedPoints(tr, "user-1", 100)

	_, err := svc.Redeem(context.Background(), "user-1", true, "reward-1")
	if !errors.Is(err, errs.ErrGuestForbidden) {
		t.Errorf("期望 ErrGuestForbidden，实际: %v", err)
	}
	if tr.reward.rewards["reward-1"].Stock != 2 {
		t.Error("游客兑换被拒时库存不应变化")
	}
}

func TestRewardService_Redeem_InsufficientPoints(t *testing.T) {
	svc, tr := setupTestRewardService()
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "周边贴纸", Cost: 200, Stock: 2, IsActive: true})
	seedPoints(tr, "user-1", 100)

	_, err := svc.Redeem(context.Background(), "user-1", false, "reward-1")
	if !errors.Is(err, errs.ErrInsufficientPoints) {
		t.Fatalf("期望 ErrInsufficientPoints，实际: %v", err)
	}

	if tr.reward.rewards["reward-1"].Stock != 2 {
		t.Error("积分不足时库存不应变化")
	}
	if len(tr.points.entries) != 1 {
		t.Error("积分不足时不应追加流水")
	}
}

func TestRewardService_Redeem_SoldOut(t *testing.T) {
	svc, tr := setupTestRewardService()
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "周边贴纸", Cost: 50, Stock: 0, IsActive: true})
	seedPoints(tr, "user-1", 100)

	_, err := svc.Redeem(context.Background(), "user-1", false, "reward-1")
	if !errors.Is(err, errs.ErrRewardSoldOut) {
		t.Errorf("期望 ErrRewardSoldOut，实际: %v", err)
	}
}

func TestRewardService_Redeem_NotFound(t *testing.T) {
	svc, tr := setupTestRewardService()
	seedPoints(tr, "user-1", 100)

	_, err := svc.Redeem(context.Background(), "user-1", false, "nonexistent")
	if !errors.Is(err, errs.ErrRewardNotFound) {
		t.Errorf("期望 ErrRewardNotFound，实际: %v", err)
	}

	// 已下架奖励同样视为不存在
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "下架奖励", Cost: 50, Stock: 2, IsActive: false})
	_, err = svc.Redeem(context.Background(), "user-1", false, "reward-1")
	if !errors.Is(err, errs.ErrRewardNotFound) {
		t.Errorf("下架奖励期望 ErrRewardNotFound，实际: %v", err)
	}
}

func TestRewardService_Redeem_LastStock(t *testing.T) {
	svc, tr := setupTestRewardService()
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "周边贴纸", Cost: 10, Stock: 1, IsActive: true})
	seedPoints(tr, "user-1", 100)

	if _, err := svc.Redeem(context.Background(), "user-1", false, "reward-1"); err != nil {
		t.Fatalf("兑换最后一件失败: %v", err)
	}

	_, err := svc.Redeem(context.Background(), "user-1", false, "reward-1")
	if !errors.Is(err, errs.ErrRewardSoldOut) {
		t.Errorf("库存耗尽后期望 ErrRewardSoldOut，实际: %v", err)
	}
}

func TestRewardService_List_OnlyActive(t *testing.T) {
	svc, tr := setupTestRewardService()
	tr.reward.addReward(&model.Reward{RewardID: "reward-1", Title: "上架奖励", Cost: 50, Stock: 2, IsActive: true})
	tr.reward.addReward(&model.Reward{RewardID: "reward-2", Title: "下架奖励", Cost: 50, Stock: 2, IsActive: false})

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("查询奖励列表失败: %v", err)
	}
	if len(list) != 1 || list[0].ID != "reward-1" {
		t.Errorf("期望仅返回上架奖励，实际: %+v", list)
	}
}

func TestRewardService_Points_Pagination(t *testing.T) {
	svc, tr := setupTestRewardService()
	for i := 0; i < 3; i++ {
		seedPoints(tr, "user-1", 10)
	}
	seedPoints(tr, "user-2", 99) // 其他用户的流水不应混入

	resp, err := svc.Points(context.Background(), "user-1", &dto.PointsLedgerRequest{
		PaginationRequest: dto.PaginationRequest{Page: 1, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("查询积分流水失败: %v", err)
	}
	if resp.Balance != 30 {
		t.Errorf("期望余额 30，实际 %d", resp.Balance)
	}
	if resp.Total != 3 {
		t.Errorf("期望总数 3，实际 %d", resp.Total)
	}
	if len(resp.List) != 2 {
		t.Errorf("期望当页 2 条，实际 %d", len(resp.List))
	}
	if resp.Page != 1 || resp.PageSize != 2 {
		t.Errorf("分页元数据不符: page=%d page_size=%d", resp.Page, resp.PageSize)
	}
}

// [自证通过] internal/service/reward_service_test.go
