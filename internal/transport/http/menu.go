package httptransport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
)

func (h *HTTPTransport) addCategory(w http.ResponseWriter, r *http.Request) {
	var req menucategory.MenuCategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	categoryID, err := h.menuSvc.AddCategory(r.Context(), req)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"categoryId": categoryID.String()})
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menuSvc.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *HTTPTransport) updateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseUUIDParam(r, "categoryID")
	if err != nil {
		respondError(w, err)

		return
	}

	var req menucategory.MenuCategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}
	req.CategoryID = categoryID

	if err := h.menuSvc.UpdateCategory(r.Context(), req); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) deleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseUUIDParam(r, "categoryID")
	if err != nil {
		respondError(w, err)

		return
	}

	if err := h.menuSvc.DeleteCategory(r.Context(), categoryID); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) getCategoryWithItems(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseUUIDParam(r, "categoryID")
	if err != nil {
		respondError(w, err)

		return
	}

	resp, err := h.menuSvc.GetCategoryWithItems(r.Context(), categoryID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *HTTPTransport) addItem(w http.ResponseWriter, r *http.Request) {
	var req menuitem.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	itemID, err := h.menuSvc.AddItem(r.Context(), req)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"itemId": itemID.String()})
}

func (h *HTTPTransport) getItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemID")
	if err != nil {
		respondError(w, err)

		return
	}

	item, err := h.menuSvc.GetItem(r.Context(), itemID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (h *HTTPTransport) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemID")
	if err != nil {
		respondError(w, err)

		return
	}

	var req menuitem.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}
	req.ItemID = itemID

	if err := h.menuSvc.UpdateItem(r.Context(), req); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemID")
	if err != nil {
		respondError(w, err)

		return
	}

	if err := h.menuSvc.DeleteItem(r.Context(), itemID); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) searchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	items, err := h.menuSvc.SearchItems(r.Context(), query.Get("name"), query.Get("description"))
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, items)
}
