package httptransport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
)

func (h *HTTPTransport) addSpecialGroup(w http.ResponseWriter, r *http.Request) {
	var req homepage.SpecialGroup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	groupID, err := h.homepageSvc.AddSpecialGroup(r.Context(), req)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"groupId": groupID.String()})
}

func (h *HTTPTransport) listSpecialGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.homepageSvc.ListSpecialGroups(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, groups)
}

func (h *HTTPTransport) addSpecialEvent(w http.ResponseWriter, r *http.Request) {
	var req homepage.SpecialEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	event, err := h.homepageSvc.AddSpecialEvent(r.Context(), req)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, event)
}

func (h *HTTPTransport) listSpecialEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.homepageSvc.ListSpecialEvents(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, events)
}

func (h *HTTPTransport) getCompanyInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.homepageSvc.GetCompanyInfo(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (h *HTTPTransport) upsertCompanyInfo(w http.ResponseWriter, r *http.Request) {
	var req homepage.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: malformed body", order.ErrInvalidRequest))

		return
	}

	companyID, err := h.homepageSvc.UpsertCompanyInfo(r.Context(), req)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"companyId": companyID.String()})
}
