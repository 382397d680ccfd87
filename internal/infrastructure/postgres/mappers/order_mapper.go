package mappers

import (
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:           model.ID,
		ClientID:     model.ClientID,
		ShopID:       model.ShopID,
		Status:       model.Status,
		TotalPrice:   model.TotalPrice,
		PointsEarned: model.PointsEarned,
		Files:        make([]domain.OrderFile, 0, len(model.Files)),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	for i := range model.Files {
		order.Files = append(order.Files, ToDomainOrderFile(&model.Files[i]))
	}
	return order
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	model := &models.OrderModel{
		ID:           order.ID,
		ClientID:     order.ClientID,
		ShopID:       order.ShopID,
		Status:       order.Status,
		TotalPrice:   order.TotalPrice,
		PointsEarned: order.PointsEarned,
		Files:        make([]models.OrderFileModel, 0, len(order.Files)),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for i, f := range order.Files {
		f.OrderID = order.ID
		fileModel := ToGORMOrderFile(&f)
		fileModel.LineNo = i
		model.Files = append(model.Files, *fileModel)
	}
	return model
}

func ToDomainOrderFile(model *models.OrderFileModel) domain.OrderFile {
	return domain.OrderFile{
		ID:           model.ID,
		OrderID:      model.OrderID,
		ServiceName:  model.ServiceName,
		Copies:       model.Copies,
		ColorMode:    model.ColorMode,
		Size:         model.Size,
		PricePerCopy: model.PricePerCopy,
		FileName:     model.FileName,
		StoragePath:  model.StoragePath,
		UploadFailed: model.UploadFailed,
		CreatedAt:    model.CreatedAt,
		PurgedAt:     model.PurgedAt,
	}
}

func ToGORMOrderFile(file *domain.OrderFile) *models.OrderFileModel {
	return &models.OrderFileModel{
		ID:           file.ID,
		OrderID:      file.OrderID,
		ServiceName:  file.ServiceName,
		Copies:       file.Copies,
		ColorMode:    file.ColorMode,
		Size:         file.Size,
		PricePerCopy: file.PricePerCopy,
		FileName:     file.FileName,
		StoragePath:  file.StoragePath,
		UploadFailed: file.UploadFailed,
		CreatedAt:    file.CreatedAt,
		PurgedAt:     file.PurgedAt,
	}
}

func ToDomainAuditEntry(model *models.AuditEntryModel) *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:        model.ID,
		OrderID:   model.OrderID,
		ActorID:   model.ActorID,
		Action:    domain.AuditAction(model.Action),
		Details:   map[string]any(model.Details),
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMAuditEntry(entry *domain.AuditEntry) *models.AuditEntryModel {
	return &models.AuditEntryModel{
		OrderID:   entry.OrderID,
		ActorID:   entry.ActorID,
		Action:    string(entry.Action),
		Details:   datatypes.JSONMap(entry.Details),
		CreatedAt: entry.CreatedAt,
	}
}
