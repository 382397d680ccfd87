package handlers

import (
	"net/http"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/LavaJover/printshop-order-service/internal/usecase/catalog"
	catalogdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/catalog"
	pointsdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/points"
	"github.com/LavaJover/printshop-order-service/internal/usecase/points"
	"github.com/LavaJover/printshop-order-service/internal/usecase/retention"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// AdminHandler serves the /admin routes. The router restricts them to
// administrators; the use cases check the role again.
type AdminHandler struct {
	catalog   catalog.CatalogUsecase
	points    points.PointsUsecase
	retention retention.RetentionUsecase
}

func NewAdminHandler(catalogUC catalog.CatalogUsecase, pointsUC points.PointsUsecase, retentionUC retention.RetentionUsecase) AdminHandler {
	return AdminHandler{catalog: catalogUC, points: pointsUC, retention: retentionUC}
}

func (h AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/shops", h.listShops)
		r.Post("/shops", h.createShop)
		r.Patch("/shops/{shopID}", h.updateShop)
		r.Put("/shops/{shopID}/manager", h.assignManager)
		r.Delete("/shops/{shopID}/manager", h.unassignManager)

		r.Get("/prices", h.listPrices)
		r.Post("/prices/adjust", h.adjustPrices)
		r.Put("/prices/{service}", h.upsertPrice)
		r.Delete("/prices/{service}", h.deletePrice)

		r.Post("/rewards", h.createReward)
		r.Patch("/rewards/{rewardID}", h.updateReward)

		r.Post("/points/reconcile", h.reconcile)
		r.Post("/files/purge", h.purge)
	})
}

func (h AdminHandler) listShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.catalog.ListShops(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]*catalogdto.ShopOutput, 0, len(shops))
	for _, s := range shops {
		out = append(out, catalogdto.ToShopOutput(s))
	}
	writeJSON(w, http.StatusOK, out)
}

type createShopRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	HasPhotoPrint bool   `json:"has_photo_print"`
	CanEditPrices bool   `json:"can_edit_prices"`
}

func (h AdminHandler) createShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req createShopRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	shop, err := h.catalog.CreateShop(r.Context(), actor, &catalogdto.CreateShopInput{
		Name:          req.Name,
		Address:       req.Address,
		HasPhotoPrint: req.HasPhotoPrint,
		CanEditPrices: req.CanEditPrices,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, catalogdto.ToShopOutput(shop))
}

type updateShopRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	HasPhotoPrint *bool   `json:"has_photo_print"`
	CanEditPrices *bool   `json:"can_edit_prices"`
}

func (h AdminHandler) updateShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req updateShopRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	shop, err := h.catalog.UpdateShop(r.Context(), actor, pathParam(r, "shopID"), &catalogdto.UpdateShopInput{
		Name:          req.Name,
		Address:       req.Address,
		HasPhotoPrint: req.HasPhotoPrint,
		CanEditPrices: req.CanEditPrices,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.ToShopOutput(shop))
}

type assignManagerRequest struct {
	ManagerID string `json:"manager_id"`
}

func (h AdminHandler) assignManager(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req assignManagerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	shop, err := h.catalog.AssignManager(r.Context(), actor, pathParam(r, "shopID"), req.ManagerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.ToShopOutput(shop))
}

func (h AdminHandler) unassignManager(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	shop, err := h.catalog.UnassignManager(r.Context(), actor, pathParam(r, "shopID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.ToShopOutput(shop))
}

func (h AdminHandler) listPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.catalog.ListServicePrices(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]*catalogdto.ServicePriceOutput, 0, len(prices))
	for i := range prices {
		out = append(out, catalogdto.ToServicePriceOutput(&prices[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type servicePriceRequest struct {
	BasePrice    string `json:"base_price"`
	IsPhotoPrint bool   `json:"is_photo_print"`
}

func (h AdminHandler) upsertPrice(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req servicePriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	price, err := h.catalog.UpsertServicePrice(r.Context(), actor, &catalogdto.ServicePriceInput{
		ServiceName:  pathParam(r, "service"),
		BasePrice:    req.BasePrice,
		IsPhotoPrint: req.IsPhotoPrint,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.ToServicePriceOutput(price))
}

func (h AdminHandler) deletePrice(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteServicePrice(r.Context(), actor, pathParam(r, "service")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adjustPricesRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

func (h AdminHandler) adjustPrices(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req adjustPricesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rows, err := h.catalog.AdjustGlobalPrices(r.Context(), actor, req.Percent)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.AdjustPricesOutput{RowsUpdated: rows})
}

type createRewardRequest struct {
	Name       string `json:"name"`
	PointsCost int64  `json:"points_cost"`
	IsActive   bool   `json:"is_active"`
}

func (h AdminHandler) createReward(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req createRewardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reward, err := h.points.CreateReward(r.Context(), actor, &pointsdto.CreateRewardInput{
		Name:       req.Name,
		PointsCost: req.PointsCost,
		IsActive:   req.IsActive,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pointsdto.ToRewardOutput(reward))
}

type updateRewardRequest struct {
	Name       *string `json:"name"`
	PointsCost *int64  `json:"points_cost"`
	IsActive   *bool   `json:"is_active"`
}

func (h AdminHandler) updateReward(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req updateRewardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reward, err := h.points.UpdateReward(r.Context(), actor, pathParam(r, "rewardID"), &pointsdto.UpdateRewardInput{
		Name:       req.Name,
		PointsCost: req.PointsCost,
		IsActive:   req.IsActive,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pointsdto.ToRewardOutput(reward))
}

func (h AdminHandler) reconcile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	out, err := h.points.ReconcilePoints(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type purgeRequest struct {
	Mode    string   `json:"mode"`
	FileIDs []string `json:"file_ids"`
}

type purgeResponse struct {
	Mode        string `json:"mode"`
	FilesPurged int64  `json:"files_purged"`
	FilesFailed int64  `json:"files_failed"`
}

func (h AdminHandler) purge(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req purgeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	mode, err := domain.ParsePurgeMode(req.Mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := h.retention.PurgeEligibleFiles(r.Context(), actor, mode, req.FileIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, purgeResponse{Mode: string(mode), FilesPurged: res.FilesPurged, FilesFailed: res.FilesFailed})
}
