package handlers

import (
	"net/http"

	pointsdto "github.com/LavaJover/printshop-order-service/internal/usecase/dto/points"
	"github.com/LavaJover/printshop-order-service/internal/usecase/points"
	"github.com/go-chi/chi/v5"
)

type PointsHandler struct {
	uc points.PointsUsecase
}

func NewPointsHandler(uc points.PointsUsecase) PointsHandler {
	return PointsHandler{uc: uc}
}

func (h PointsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clients/{clientID}/points", h.balance)
	r.Get("/clients/{clientID}/redemptions", h.redemptions)
	r.Get("/rewards", h.rewards)
	r.Post("/rewards/{rewardID}/redeem", h.redeem)
}

func (h PointsHandler) balance(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	out, err := h.uc.GetBalance(r.Context(), actor, pathParam(r, "clientID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h PointsHandler) redemptions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	list, err := h.uc.ListRedemptions(r.Context(), actor, pathParam(r, "clientID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]*pointsdto.RedemptionOutput, 0, len(list))
	for _, red := range list {
		out = append(out, pointsdto.ToRedemptionOutput(red))
	}
	writeJSON(w, http.StatusOK, out)
}

// rewards lists the active rewards; admins may pass ?all=true.
func (h PointsHandler) rewards(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	activeOnly := !(actor.IsAdmin() && r.URL.Query().Get("all") == "true")
	list, err := h.uc.ListRewards(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]*pointsdto.RewardOutput, 0, len(list))
	for _, rw := range list {
		out = append(out, pointsdto.ToRewardOutput(rw))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h PointsHandler) redeem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	out, err := h.uc.RedeemReward(r.Context(), actor, actor.ID, pathParam(r, "rewardID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
