package setup

import (
	"fmt"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/usecase/catalog"
	"github.com/LavaJover/printshop-order-service/internal/usecase/order"
	"github.com/LavaJover/printshop-order-service/internal/usecase/points"
	"github.com/LavaJover/printshop-order-service/internal/usecase/retention"
	"github.com/google/uuid"
)

type UseCases struct {
	CatalogUsecase   catalog.CatalogUsecase
	OrderUsecase     order.OrderUsecase
	PointsUsecase    points.PointsUsecase
	RetentionUsecase retention.RetentionUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	repos := deps.Repositories

	reconcileMode, err := domain.ParseReconcileMode(deps.Config.Points.ReconcileMode)
	if err != nil {
		return nil, fmt.Errorf("points.reconcile_mode: %w", err)
	}

	catalogUsecase := catalog.NewDefaultCatalogUsecase(
		repos.CatalogRepo,
		repos.ShopRepo,
		repos.Tx,
		deps.Publisher,
		deps.Metrics,
		deps.Logger,
		uuid.NewString,
	)

	orderUsecase := order.NewDefaultOrderUsecase(
		repos.OrderRepo,
		repos.ShopRepo,
		repos.ClientRepo,
		catalogUsecase,
		deps.Blobs,
		repos.Tx,
		deps.Publisher,
		deps.Metrics,
		deps.Logger,
	)

	pointsUsecase, err := points.NewDefaultPointsUsecase(
		repos.ClientRepo,
		repos.RewardRepo,
		repos.Tx,
		deps.Publisher,
		deps.Metrics,
		deps.Logger,
		reconcileMode,
	)
	if err != nil {
		return nil, fmt.Errorf("points usecase: %w", err)
	}

	retentionUsecase := retention.NewDefaultRetentionUsecase(
		repos.FileRepo,
		deps.Blobs,
		deps.Publisher,
		deps.Metrics,
		deps.Logger,
		deps.Config.Retention.MaxAge,
	)

	return &UseCases{
		CatalogUsecase:   catalogUsecase,
		OrderUsecase:     orderUsecase,
		PointsUsecase:    pointsUsecase,
		RetentionUsecase: retentionUsecase,
	}, nil
}
