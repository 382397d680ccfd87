package order

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/tracing"
	orderdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/order"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const defaultPayloadName = "payload"

// CreateOrder prices every line from the shop catalog at this moment and
// stores the order as pending. Payload upload failures mark the line and
// never abort the order.
func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, actor domain.Actor, input *orderdto.CreateOrderInput) (_ *orderdto.OrderOutput, err error) {
	ctx, span := tracing.Start(ctx, tracerName, "order.Create",
		attribute.String("shop_id", input.ShopID),
		attribute.String("client_id", input.ClientID),
		attribute.Int("lines", len(input.Lines)),
	)
	defer tracing.End(span, &err)

	if !actor.IsAdmin() && (actor.Role != domain.RoleClient || actor.ID != input.ClientID) {
		return nil, fmt.Errorf("%w: orders are placed by the client", domain.ErrForbidden)
	}
	if err := validateCreateInput(input); err != nil {
		uc.recordError("create_order", err)
		return nil, err
	}

	catalog, err := uc.Prices.ResolveCatalog(ctx, input.ShopID)
	if err != nil {
		uc.recordError("create_order", err)
		return nil, err
	}
	priced := make(map[string]domain.CatalogEntry, len(catalog))
	for _, entry := range catalog {
		priced[entry.ServiceName] = entry
	}

	now := uc.Now()
	order := &domain.Order{
		ID:        uc.NewID(),
		ClientID:  input.ClientID,
		ShopID:    input.ShopID,
		Status:    domain.StatusPending,
		Files:     make([]domain.OrderFile, 0, len(input.Lines)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, line := range input.Lines {
		entry, ok := priced[line.ServiceName]
		if !ok {
			err := fmt.Errorf("%w: line %d: service %q is not offered by shop %s", domain.ErrValidation, i, line.ServiceName, input.ShopID)
			uc.recordError("create_order", err)
			return nil, err
		}
		order.Files = append(order.Files, domain.OrderFile{
			ID:           uc.NewID(),
			OrderID:      order.ID,
			ServiceName:  entry.ServiceName,
			Copies:       line.Copies,
			ColorMode:    line.ColorMode,
			Size:         line.Size,
			PricePerCopy: entry.EffectivePrice,
			FileName:     line.FileName,
			CreatedAt:    now,
		})
	}
	order.TotalPrice, order.PointsEarned = domain.OrderTotals(order.Files)

	uploaded, failedUploads := uc.uploadPayloads(ctx, order, input.Lines)

	err = uc.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.ClientRepo.EnsureClient(ctx, order.ClientID); err != nil {
			return err
		}
		if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		return uc.OrderRepo.AppendAudit(ctx, &domain.AuditEntry{
			OrderID: order.ID,
			ActorID: actor.ID,
			Action:  domain.AuditCreated,
			Details: map[string]any{
				"total_price":    order.TotalPrice.StringFixed(2),
				"points_earned":  order.PointsEarned,
				"line_count":     len(order.Files),
				"failed_uploads": failedUploads,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		uc.discardPayloads(ctx, order.ID, uploaded)
		uc.recordError("create_order", err)
		return nil, err
	}

	uc.recordOrderCreatedMetrics(order, failedUploads)
	uc.Logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("shop_id", order.ShopID),
		zap.String("client_id", order.ClientID),
		zap.String("total_price", order.TotalPrice.StringFixed(2)),
		zap.Int64("points_earned", order.PointsEarned),
		zap.Int("failed_uploads", failedUploads),
	)

	return orderdto.ToOrderOutput(order), nil
}

func validateCreateInput(input *orderdto.CreateOrderInput) error {
	if strings.TrimSpace(input.ClientID) == "" {
		return fmt.Errorf("%w: client id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.ShopID) == "" {
		return fmt.Errorf("%w: shop id is required", domain.ErrValidation)
	}
	if len(input.Lines) == 0 {
		return fmt.Errorf("%w: an order needs at least one line", domain.ErrValidation)
	}
	for i, line := range input.Lines {
		if line.Copies < 1 {
			return fmt.Errorf("%w: line %d: copies must be at least 1", domain.ErrValidation, i)
		}
	}
	return nil
}

// uploadPayloads stores every line payload under
// orders/{order_id}/{file_id}/{file_name} and returns the written paths.
func (uc *DefaultOrderUsecase) uploadPayloads(ctx context.Context, order *domain.Order, lines []orderdto.OrderLineInput) ([]string, int) {
	var (
		uploaded []string
		failed   int
	)
	for i := range order.Files {
		line := lines[i]
		if line.Payload == nil {
			continue
		}
		file := &order.Files[i]
		name := path.Base(strings.TrimSpace(line.FileName))
		if name == "." || name == "/" || name == "" {
			name = defaultPayloadName
		}
		if file.FileName == "" {
			file.FileName = name
		}
		storagePath := path.Join("orders", order.ID, file.ID, name)

		if err := uc.Blobs.Put(ctx, storagePath, line.Payload, line.ContentType); err != nil {
			file.UploadFailed = true
			failed++
			uc.Logger.Warn("order file upload failed",
				zap.String("order_id", order.ID),
				zap.String("file_id", file.ID),
				zap.String("path", storagePath),
				zap.Error(err),
			)
			continue
		}
		file.StoragePath = storagePath
		uploaded = append(uploaded, storagePath)
	}
	return uploaded, failed
}

func (uc *DefaultOrderUsecase) discardPayloads(ctx context.Context, orderID string, paths []string) {
	for _, p := range paths {
		if err := uc.Blobs.Remove(ctx, p); err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
			uc.Logger.Warn("failed to discard payload of unsaved order",
				zap.String("order_id", orderID),
				zap.String("path", p),
				zap.Error(err),
			)
		}
	}
}
