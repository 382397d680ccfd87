package points

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/logger"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/metrics"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/tracing"
	"github.com/LavaJover/printshop-order-service/internal/usecase"
	pointsdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/points"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	tracerName        = "printshop/usecase/points"
	voucherCodeLength = 12
)

type PointsUsecase interface {
	EnsureClient(ctx context.Context, clientID string) error
	GetBalance(ctx context.Context, actor domain.Actor, clientID string) (*pointsdto.BalanceOutput, error)
	RedeemReward(ctx context.Context, actor domain.Actor, clientID, rewardID string) (*pointsdto.RedeemOutput, error)
	ListRedemptions(ctx context.Context, actor domain.Actor, clientID string) ([]*domain.RewardRedemption, error)
	ReconcilePoints(ctx context.Context, actor domain.Actor) (*pointsdto.ReconcileOutput, error)

	ListRewards(ctx context.Context, activeOnly bool) ([]*domain.Reward, error)
	CreateReward(ctx context.Context, actor domain.Actor, input *pointsdto.CreateRewardInput) (*domain.Reward, error)
	UpdateReward(ctx context.Context, actor domain.Actor, rewardID string, input *pointsdto.UpdateRewardInput) (*domain.Reward, error)
}

type DefaultPointsUsecase struct {
	ClientRepo    domain.ClientRepository
	RewardRepo    domain.RewardRepository
	Tx            domain.TxManager
	Publisher     domain.EventPublisher
	Metrics       *metrics.PrintshopMetrics
	Logger        *zap.Logger
	ReconcileMode domain.ReconcileMode
	Now           func() time.Time

	voucherCode func() string
}

func NewDefaultPointsUsecase(
	clientRepo domain.ClientRepository,
	rewardRepo domain.RewardRepository,
	tx domain.TxManager,
	publisher domain.EventPublisher,
	printshopMetrics *metrics.PrintshopMetrics,
	log *zap.Logger,
	reconcileMode domain.ReconcileMode,
) (*DefaultPointsUsecase, error) {
	voucherCode, err := nanoid.CustomASCII("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", voucherCodeLength)
	if err != nil {
		return nil, fmt.Errorf("voucher code generator: %w", err)
	}
	if reconcileMode == "" {
		reconcileMode = domain.ReconcileEarned
	}

	return &DefaultPointsUsecase{
		ClientRepo:    clientRepo,
		RewardRepo:    rewardRepo,
		Tx:            tx,
		Publisher:     publisher,
		Metrics:       printshopMetrics,
		Logger:        logger.OrNop(log).Named("points"),
		ReconcileMode: reconcileMode,
		Now:           func() time.Time { return time.Now().UTC() },
		voucherCode:   voucherCode,
	}, nil
}

func (uc *DefaultPointsUsecase) EnsureClient(ctx context.Context, clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return fmt.Errorf("%w: client id is required", domain.ErrValidation)
	}
	return uc.ClientRepo.EnsureClient(ctx, clientID)
}

func (uc *DefaultPointsUsecase) GetBalance(ctx context.Context, actor domain.Actor, clientID string) (*pointsdto.BalanceOutput, error) {
	if err := canSeeClient(actor, clientID); err != nil {
		return nil, err
	}
	client, err := uc.ClientRepo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &pointsdto.BalanceOutput{ClientID: client.ID, Points: client.Points}, nil
}

// RedeemReward debits first: the guarded debit and the redemption row
// commit together or not at all.
func (uc *DefaultPointsUsecase) RedeemReward(ctx context.Context, actor domain.Actor, clientID, rewardID string) (_ *pointsdto.RedeemOutput, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "points.RedeemReward",
		attribute.String("client_id", clientID),
		attribute.String("reward_id", rewardID),
	)
	defer tracing.End(span, &err)

	if actor.Role != domain.RoleClient || actor.ID != clientID {
		return nil, fmt.Errorf("%w: clients redeem only for themselves", domain.ErrForbidden)
	}

	reward, err := uc.RewardRepo.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, fmt.Errorf("%w: reward %s is not active", domain.ErrValidation, reward.ID)
	}

	redemption := &domain.RewardRedemption{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		RewardID:    reward.ID,
		PointsSpent: reward.PointsCost,
		VoucherCode: uc.voucherCode(),
		RedeemedAt:  uc.Now(),
	}

	var remaining int64
	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		remaining, err = uc.ClientRepo.DebitPoints(ctx, clientID, reward.PointsCost)
		if err != nil {
			return err
		}
		return uc.RewardRepo.CreateRedemption(ctx, redemption)
	})
	if err != nil {
		uc.recordError("redeem_reward", err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordRedemption(reward.ID, reward.PointsCost)
	}
	uc.Logger.Info("reward redeemed",
		zap.String("client_id", clientID),
		zap.String("reward_id", reward.ID),
		zap.Int64("points", reward.PointsCost),
		zap.Int64("remaining", remaining),
	)
	usecase.PublishLedger(ctx, uc.Publisher, uc.Logger, domain.LedgerEvent{
		Type:       domain.LedgerDebited,
		ClientID:   clientID,
		RewardID:   reward.ID,
		Points:     reward.PointsCost,
		OccurredAt: redemption.RedeemedAt,
	})

	return &pointsdto.RedeemOutput{
		RemainingBalance: remaining,
		VoucherCode:      redemption.VoucherCode,
		RedemptionID:     redemption.ID,
	}, nil
}

func (uc *DefaultPointsUsecase) ListRedemptions(ctx context.Context, actor domain.Actor, clientID string) ([]*domain.RewardRedemption, error) {
	if err := canSeeClient(actor, clientID); err != nil {
		return nil, err
	}
	return uc.RewardRepo.ListRedemptions(ctx, clientID)
}

// ReconcilePoints rewrites every client balance from the order history in
// one statement. Running it again without new activity changes nothing.
func (uc *DefaultPointsUsecase) ReconcilePoints(ctx context.Context, actor domain.Actor) (_ *pointsdto.ReconcileOutput, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "points.Reconcile", attribute.String("mode", string(uc.ReconcileMode)))
	defer tracing.End(span, &err)

	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	updated, err := uc.ClientRepo.ReconcilePoints(ctx, uc.ReconcileMode)
	if err != nil {
		uc.recordError("reconcile_points", err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordReconciliation(string(uc.ReconcileMode), updated)
	}
	uc.Logger.Info("points reconciled",
		zap.String("mode", string(uc.ReconcileMode)),
		zap.Int64("clients_updated", updated),
		zap.String("actor_id", actor.ID),
	)
	usecase.PublishLedger(ctx, uc.Publisher, uc.Logger, domain.LedgerEvent{
		Type:       domain.LedgerReconciled,
		Clients:    updated,
		OccurredAt: uc.Now(),
	})

	return &pointsdto.ReconcileOutput{ClientsUpdated: updated, Mode: string(uc.ReconcileMode)}, nil
}

func (uc *DefaultPointsUsecase) recordError(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RecordError(operation, usecase.ErrorKind(err))
}

func canSeeClient(actor domain.Actor, clientID string) error {
	if actor.IsAdmin() || (actor.Role == domain.RoleClient && actor.ID == clientID) {
		return nil
	}
	return fmt.Errorf("%w: not allowed to read client %s", domain.ErrForbidden, clientID)
}
