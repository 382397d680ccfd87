package orderdto

import (
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

type OrderOutput struct {
	ID            string             `json:"id"`
	ClientID      string             `json:"client_id"`
	ShopID        string             `json:"shop_id"`
	Status        string             `json:"status"`
	TotalPrice    string             `json:"total_price"`
	PointsEarned  int64              `json:"points_earned"`
	FailedUploads int                `json:"failed_uploads"`
	Files         []OrderFileOutput  `json:"files"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Audit         []AuditEntryOutput `json:"audit,omitempty"`
}

type OrderFileOutput struct {
	ID           string     `json:"id"`
	ServiceName  string     `json:"service_name"`
	Copies       int        `json:"copies"`
	ColorMode    string     `json:"color_mode"`
	Size         string     `json:"size"`
	PricePerCopy string     `json:"price_per_copy"`
	LineTotal    string     `json:"line_total"`
	FileName     string     `json:"file_name,omitempty"`
	StoragePath  string     `json:"storage_path,omitempty"`
	UploadFailed bool       `json:"upload_failed"`
	PurgedAt     *time.Time `json:"purged_at,omitempty"`
}

type AuditEntryOutput struct {
	ActorID   string         `json:"actor_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

func ToOrderOutput(order *domain.Order) *OrderOutput {
	out := &OrderOutput{
		ID:           order.ID,
		ClientID:     order.ClientID,
		ShopID:       order.ShopID,
		Status:       string(order.Status),
		TotalPrice:   order.TotalPrice.StringFixed(2),
		PointsEarned: order.PointsEarned,
		Files:        make([]OrderFileOutput, 0, len(order.Files)),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for _, f := range order.Files {
		if f.UploadFailed {
			out.FailedUploads++
		}
		out.Files = append(out.Files, OrderFileOutput{
			ID:           f.ID,
			ServiceName:  f.ServiceName,
			Copies:       f.Copies,
			ColorMode:    f.ColorMode,
			Size:         f.Size,
			PricePerCopy: f.PricePerCopy.StringFixed(2),
			LineTotal:    f.LineTotal().StringFixed(2),
			FileName:     f.FileName,
			StoragePath:  f.StoragePath,
			UploadFailed: f.UploadFailed,
			PurgedAt:     f.PurgedAt,
		})
	}
	return out
}

func ToAuditOutputs(entries []*domain.AuditEntry) []AuditEntryOutput {
	out := make([]AuditEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryOutput{
			ActorID:   e.ActorID,
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
