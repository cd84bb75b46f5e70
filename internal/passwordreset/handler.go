package passwordreset

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/membership-management/internal/auth"
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

// SendOTP handles POST /users/forgot-password/send-otp.
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var dto ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.RequestOTP(dto)
	if err != nil {
		h.Logger.Error("otp request failed", "email", dto.Email, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "OTP sent to email",
		"userId":      result.UserID,
	})
}

// VerifyOTP handles POST /users/forgot-password/verify-otp.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var dto VerifyOTPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.VerifyOTP(dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "OTP verified successfully",
	})
}

// ResetPassword handles POST /users/forgot-password/reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "Password reset successful",
	})
}

// ChangePassword handles PUT /users/me/password for the authenticated user.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(identity.UserID, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"message":     "Password updated successfully",
	})
}
