package handlers

import (
	"bytes"
	"encoding/base64"
	"net/http"

	orderdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/order"
	"github.com/LavaJover/printshop-order-service/internal/usecase/order"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	uc order.OrderUsecase
}

func NewOrderHandler(uc order.OrderUsecase) OrderHandler {
	return OrderHandler{uc: uc}
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.create)
	r.Get("/orders/{orderID}", h.get)
	r.Post("/orders/{orderID}/status", h.transition)
	r.Get("/shops/{shopID}/orders", h.listShop)
	r.Get("/clients/{clientID}/orders", h.listClient)
}

type createOrderRequest struct {
	ShopID   string             `json:"shop_id"`
	ClientID string             `json:"client_id"`
	Lines    []orderLineRequest `json:"lines"`
}

type orderLineRequest struct {
	ServiceName   string `json:"service_name"`
	Copies        int    `json:"copies"`
	ColorMode     string `json:"color_mode"`
	Size          string `json:"size"`
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	ContentBase64 string `json:"content_base64"`
}

func (h OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Clients order for themselves; admins order on behalf of a named client.
	clientID := req.ClientID
	if clientID == "" {
		if actor.IsAdmin() {
			writeError(w, http.StatusBadRequest, "client_id is required")
			return
		}
		clientID = actor.ID
	}

	input := &orderdto.CreateOrderInput{
		ClientID: clientID,
		ShopID:   req.ShopID,
		Lines:    make([]orderdto.OrderLineInput, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		line := orderdto.OrderLineInput{
			ServiceName: l.ServiceName,
			Copies:      l.Copies,
			ColorMode:   l.ColorMode,
			Size:        l.Size,
			FileName:    l.FileName,
			ContentType: l.ContentType,
		}
		if l.ContentBase64 != "" {
			payload, err := base64.StdEncoding.DecodeString(l.ContentBase64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "content_base64 is not valid base64")
				return
			}
			line.Payload = bytes.NewReader(payload)
		}
		input.Lines = append(input.Lines, line)
	}

	out, err := h.uc.CreateOrder(r.Context(), actor, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	out, err := h.uc.GetOrder(r.Context(), actor, pathParam(r, "orderID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h OrderHandler) transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req transitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.uc.TransitionOrder(r.Context(), actor, pathParam(r, "orderID"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h OrderHandler) listShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	out, err := h.uc.ListShopOrders(r.Context(), actor, pathParam(r, "shopID"), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h OrderHandler) listClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	out, err := h.uc.ListClientOrders(r.Context(), actor, pathParam(r, "clientID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
