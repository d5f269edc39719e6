package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

const (
	codeInvalidRequest  = "invalid_request"
	codeOrderNotFound   = "order_not_found"
	codeItemNotFound    = "food_item_not_found"
	codeCategoryMissing = "food_category_not_found"
	codeCompanyMissing  = "company_info_not_found"
	codeDuplicateName   = "duplicate_name"
	codeInternalError   = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// respondError maps domain sentinels to HTTP semantics so callers can
// distinguish validation, not-found, conflict and internal failures without
// parsing error text.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidRequest),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrInvalidStatus):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidRequest})
	case errors.Is(err, order.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeOrderNotFound})
	case errors.Is(err, menuitem.ErrItemNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeItemNotFound})
	case errors.Is(err, menucategory.ErrCategoryNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeCategoryMissing})
	case errors.Is(err, homepage.ErrCompanyInfoMissing):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeCompanyMissing})
	case errors.Is(err, menucategory.ErrDuplicateCategory),
		errors.Is(err, homepage.ErrDuplicateGroup):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: codeDuplicateName})
	default:
		slog.Error("Internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "internal error",
			Code:  codeInternalError,
		})
	}
}
