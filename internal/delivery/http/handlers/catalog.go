package handlers

import (
	"net/http"

	"github.com/LavaJover/printshop-order-service/internal/usecase/catalog"
	catalogdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/catalog"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the shop-facing catalog routes.
type CatalogHandler struct {
	uc catalog.CatalogUsecase
}

func NewCatalogHandler(uc catalog.CatalogUsecase) CatalogHandler {
	return CatalogHandler{uc: uc}
}

func (h CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/shops/{shopID}/catalog", h.resolve)
	r.Put("/shops/{shopID}/prices/{service}", h.upsertLocalPrice)
	r.Delete("/shops/{shopID}/prices/{service}", h.deleteLocalPrice)
}

func (h CatalogHandler) resolve(w http.ResponseWriter, r *http.Request) {
	entries, err := h.uc.ResolveCatalog(r.Context(), pathParam(r, "shopID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.ToCatalogOutputs(entries))
}

type localPriceRequest struct {
	Price string `json:"price"`
}

func (h CatalogHandler) upsertLocalPrice(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req localPriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	price, err := h.uc.UpsertLocalPrice(r.Context(), actor, &catalogdto.LocalPriceInput{
		ShopID:      pathParam(r, "shopID"),
		ServiceName: pathParam(r, "service"),
		Price:       req.Price,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogdto.ToLocalPriceOutput(price))
}

func (h CatalogHandler) deleteLocalPrice(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := h.uc.DeleteLocalPrice(r.Context(), actor, pathParam(r, "shopID"), pathParam(r, "service")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
