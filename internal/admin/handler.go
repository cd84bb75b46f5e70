package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/membership-management/internal/transport"
	"github.com/frahmantamala/membership-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

type transitionResponse struct {
	StatusCode            int        `json:"status_code"`
	Message               string     `json:"message"`
	SubscriptionStartDate *time.Time `json:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscriptionEndDate,omitempty"`
}

type listUsersResponse struct {
	StatusCode int            `json:"status_code"`
	Message    string         `json:"message"`
	Users      []UserListItem `json:"users"`
}

func (h *Handler) userIDParam(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// UpdateStatus handles PATCH /admin/users/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto StatusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Transition(userID, dto.Status)
	if err != nil {
		h.Logger.Error("status transition failed", "user_id", userID, "status", dto.Status, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transitionResponse{
		StatusCode:            http.StatusOK,
		Message:               result.Message,
		SubscriptionStartDate: result.SubscriptionStartDate,
		SubscriptionEndDate:   result.SubscriptionEndDate,
	})
}

// UpdateUser handles PATCH /admin/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateUser(userID, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "User updated successfully",
	})
}

// SetActive handles PATCH /admin/users/{id}/active.
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto SetActiveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.IsActive == nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetActive(userID, *dto.IsActive); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	message := "User activated successfully"
	if !*dto.IsActive {
		message = "User deactivated successfully"
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     message,
	})
}

// ListUsers handles GET /admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, listUsersResponse{
		StatusCode: http.StatusOK,
		Message:    "Users retrieved successfully",
		Users:      users,
	})
}
