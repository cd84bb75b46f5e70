package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/frahmantamala/membership-management/internal"
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Error("login failed", "email", dto.Email, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		StatusCode: http.StatusOK,
		Message:    "Login successful",
		UserID:     result.UserID,
		Token:      result.Token,
		RoleID:     result.RoleID,
		FirstName:  result.FirstName,
		Email:      result.Email,
	})
}

// AuthMiddleware validates the bearer token and loads the caller's identity
// into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		identity, err := h.Service.ResolveIdentity(claims)
		if err != nil {
			h.Logger.Error("failed to resolve token identity", "subject", claims.Subject, "error", err)
			h.HandleServiceError(w, err)
			return
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin guards admin-only routes. Must run after AuthMiddleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if identity.RoleID != RoleAdmin {
			h.Logger.Warn("admin route denied", "user_id", identity.UserID, "role_id", identity.RoleID)
			h.HandleServiceError(w, apperrors.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
