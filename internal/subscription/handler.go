package subscription

import (
	"net/http"

	"github.com/frahmantamala/membership-management/internal/transport"
)

type ServiceAPI interface {
	GetAllSubscriptionTypes() ([]SubscriptionTypeResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetSubscriptionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetAllSubscriptionTypes()
	if err != nil {
		h.Logger.Error("GetSubscriptionTypes: failed to get subscription types", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get subscription types")
		return
	}

	h.WriteJSON(w, http.StatusOK, SubscriptionTypesResponse{
		SubscriptionTypes: types,
	})
}
