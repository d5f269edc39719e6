package httptransport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
)

// dateLayouts accepted for startDate/endDate query parameters. Only the date
// component matters for range queries.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDateParam(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: invalid date %q", order.ErrInvalidRequest, value)
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", order.ErrInvalidRequest, name)
	}

	return id, nil
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req order.PlaceOrderModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	orderID, err := h.orderSvc.PlaceOrder(r.Context(), req)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUUIDParam(r, "orderID")
	if err != nil {
		respondError(w, err)

		return
	}

	resp, err := h.orderSvc.GetOrder(r.Context(), orderID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *HTTPTransport) getAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.GetAllOrders(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *HTTPTransport) getOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUIDParam(r, "userID")
	if err != nil {
		respondError(w, err)

		return
	}

	orders, err := h.orderSvc.GetOrdersByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *HTTPTransport) getOrdersByUserAndDateRange(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUIDParam(r, "userID")
	if err != nil {
		respondError(w, err)

		return
	}

	query := r.URL.Query()
	start, err := parseDateParam(query.Get("startDate"))
	if err != nil {
		respondError(w, err)

		return
	}
	end, err := parseDateParam(query.Get("endDate"))
	if err != nil {
		respondError(w, err)

		return
	}

	orders, err := h.orderSvc.GetOrdersByUserAndDateRange(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUUIDParam(r, "orderID")
	if err != nil {
		respondError(w, err)

		return
	}

	var req order.PlaceOrderModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	if err := h.orderSvc.UpdateOrder(r.Context(), orderID, req); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUUIDParam(r, "orderID")
	if err != nil {
		respondError(w, err)

		return
	}

	if err := h.orderSvc.DeleteOrder(r.Context(), orderID); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
