package registration

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/membership-management/internal/transport"
	"github.com/frahmantamala/membership-management/pkg/logger"
)

// 10 MB form memory cap; larger files spill to temp storage.
const maxUploadMemory = 10 << 20

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

// Register handles POST /register as a multipart form carrying the profile
// fields and an optional paymentEvidence file.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto := RegisterDTO{
		FirstName:   r.FormValue("firstName"),
		LastName:    r.FormValue("lastName"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		PhoneNumber: r.FormValue("phoneNumber"),
	}
	dto.DepartmentID, _ = strconv.ParseInt(r.FormValue("departmentId"), 10, 64)
	dto.SubscriptionTypeID, _ = strconv.ParseInt(r.FormValue("subscriptionTypeId"), 10, 64)
	if txID := r.FormValue("transactionId"); txID != "" {
		dto.TransactionID = &txID
	}

	var evidence *EvidenceUpload
	file, header, err := r.FormFile("paymentEvidence")
	if err == nil {
		defer file.Close()
		evidence = &EvidenceUpload{
			Filename: header.Filename,
			Content:  file,
		}
	} else if err != http.ErrMissingFile {
		h.WriteError(w, http.StatusBadRequest, "invalid payment evidence upload")
		return
	}

	result, err := h.Service.Register(dto, evidence)
	if err != nil {
		h.Logger.Error("registration failed", "email", dto.Email, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status_code": http.StatusCreated,
		"message":     "User registration successful",
		"userId":      result.UserID,
	})
}
