package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/menusvc"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/ordersvc"
)

type stubOrderService struct {
	placedID  uuid.UUID
	err       error
	response  *ordersvc.OrderResponse
	lastStart time.Time
	lastEnd   time.Time
}

func (s *stubOrderService) PlaceOrder(context.Context, order.PlaceOrderModel) (uuid.UUID, error) {
	return s.placedID, s.err
}

func (s *stubOrderService) UpdateOrder(context.Context, uuid.UUID, order.PlaceOrderModel) error {
	return s.err
}

func (s *stubOrderService) DeleteOrder(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubOrderService) GetOrder(context.Context, uuid.UUID) (*ordersvc.OrderResponse, error) {
	return s.response, s.err
}

func (s *stubOrderService) GetAllOrders(context.Context) ([]ordersvc.OrderResponse, error) {
	if s.err != nil {
		return nil, s.err
	}

	return []ordersvc.OrderResponse{}, nil
}

func (s *stubOrderService) GetOrdersByUser(context.Context, uuid.UUID) ([]ordersvc.OrderResponse, error) {
	if s.err != nil {
		return nil, s.err
	}

	return []ordersvc.OrderResponse{}, nil
}

func (s *stubOrderService) GetOrdersByUserAndDateRange(
	_ context.Context,
	_ uuid.UUID,
	start time.Time,
	end time.Time,
) ([]ordersvc.OrderResponse, error) {
	s.lastStart = start
	s.lastEnd = end
	if s.err != nil {
		return nil, s.err
	}

	return []ordersvc.OrderResponse{}, nil
}

type stubMenuService struct {
	err error
}

func (s *stubMenuService) AddCategory(context.Context, menucategory.MenuCategory) (uuid.UUID, error) {
	return uuid.New(), s.err
}

func (s *stubMenuService) UpdateCategory(context.Context, menucategory.MenuCategory) error {
	return s.err
}

func (s *stubMenuService) DeleteCategory(context.Context, uuid.UUID) error { return s.err }

func (s *stubMenuService) ListCategories(context.Context) ([]menucategory.MenuCategory, error) {
	return []menucategory.MenuCategory{}, s.err
}

func (s *stubMenuService) GetCategoryWithItems(context.Context, uuid.UUID) (*menusvc.CategoryWithItems, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &menusvc.CategoryWithItems{}, nil
}

func (s *stubMenuService) AddItem(context.Context, menuitem.MenuItem) (uuid.UUID, error) {
	return uuid.New(), s.err
}

func (s *stubMenuService) UpdateItem(context.Context, menuitem.MenuItem) error { return s.err }
func (s *stubMenuService) DeleteItem(context.Context, uuid.UUID) error         { return s.err }

func (s *stubMenuService) GetItem(context.Context, uuid.UUID) (*menuitem.MenuItem, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &menuitem.MenuItem{}, nil
}

func (s *stubMenuService) SearchItems(context.Context, string, string) ([]menuitem.MenuItem, error) {
	return []menuitem.MenuItem{}, s.err
}

type stubHomepageService struct {
	err error
}

func (s *stubHomepageService) AddSpecialGroup(context.Context, homepage.SpecialGroup) (uuid.UUID, error) {
	return uuid.New(), s.err
}

func (s *stubHomepageService) ListSpecialGroups(context.Context) ([]homepage.SpecialGroup, error) {
	return []homepage.SpecialGroup{}, s.err
}

func (s *stubHomepageService) AddSpecialEvent(context.Context, homepage.SpecialEvent) (homepage.SpecialEvent, error) {
	return homepage.SpecialEvent{EventID: uuid.New()}, s.err
}

func (s *stubHomepageService) ListSpecialEvents(context.Context) ([]homepage.SpecialEvent, error) {
	return []homepage.SpecialEvent{}, s.err
}

func (s *stubHomepageService) GetCompanyInfo(context.Context) (*homepage.CompanyInfo, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &homepage.CompanyInfo{}, nil
}

func (s *stubHomepageService) UpsertCompanyInfo(context.Context, homepage.CompanyInfo) (uuid.UUID, error) {
	return uuid.New(), s.err
}

func newTestTransport(orderSvc orderService, menuSvc menuService, homepageSvc homepageService) *HTTPTransport {
	h := NewHTTPTransport(orderSvc, menuSvc, homepageSvc)
	h.RegisterRoutes()

	return h
}

func doRequest(t *testing.T, h *HTTPTransport, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}

func TestPlaceOrderEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		placedID := uuid.New()
		h := newTestTransport(&stubOrderService{placedID: placedID}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPost, "/api/order/place-order", `{"userId":"`+uuid.NewString()+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, placedID.String(), resp["orderId"])
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPost, "/api/order/place-order", `{not json`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("validation error from service", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{err: order.ErrInvalidRequest}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPost, "/api/order/place-order", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown food item", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{err: menuitem.ErrItemNotFound}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPost, "/api/order/place-order", `{}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, codeItemNotFound, decodeError(t, rec).Code)
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet, "/api/order/not-a-uuid", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{err: order.ErrOrderNotFound}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet, "/api/order/"+uuid.NewString(), "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, codeOrderNotFound, decodeError(t, rec).Code)
	})

	t.Run("found", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{response: &ordersvc.OrderResponse{OrderID: uuid.New()}}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet, "/api/order/"+uuid.NewString(), "")
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOrdersByUserAndDateRangeEndpoint(t *testing.T) {
	t.Run("accepts date-only parameters", func(t *testing.T) {
		svc := &stubOrderService{}
		h := newTestTransport(svc, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet,
			"/api/order/user-date/"+uuid.NewString()+"?startDate=2026-03-10&endDate=2026-03-12", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), svc.lastStart)
		assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), svc.lastEnd)
	})

	t.Run("accepts RFC3339 parameters", func(t *testing.T) {
		svc := &stubOrderService{}
		h := newTestTransport(svc, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet,
			"/api/order/user-date/"+uuid.NewString()+"?startDate=2026-03-10T08:00:00Z&endDate=2026-03-12T22:00:00Z", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects missing bounds", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet, "/api/order/user-date/"+uuid.NewString(), "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed bounds", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet,
			"/api/order/user-date/"+uuid.NewString()+"?startDate=yesterday&endDate=2026-03-12", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateAndDeleteOrderEndpoints(t *testing.T) {
	t.Run("update no content", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPut, "/api/order/update-order/"+uuid.NewString(), `{}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete no content", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodDelete, "/api/order/delete-order/"+uuid.NewString(), "")
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("delete not found", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{err: order.ErrOrderNotFound}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodDelete, "/api/order/delete-order/"+uuid.NewString(), "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMenuEndpoints(t *testing.T) {
	t.Run("duplicate category conflict", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{err: menucategory.ErrDuplicateCategory}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPost, "/api/menu/categories", `{"name":"Starters"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, codeDuplicateName, decodeError(t, rec).Code)
	})

	t.Run("add category created", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPost, "/api/menu/categories", `{"name":"Starters"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("item not found", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{err: menuitem.ErrItemNotFound}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodGet, "/api/menu/items/"+uuid.NewString(), "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHomepageEndpoints(t *testing.T) {
	t.Run("duplicate group conflict", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{err: homepage.ErrDuplicateGroup})

		rec := doRequest(t, h, http.MethodPost, "/api/homepage/special-groups", `{"groupName":"Chef's picks"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("company info missing", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{err: homepage.ErrCompanyInfoMissing})

		rec := doRequest(t, h, http.MethodGet, "/api/homepage/company", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, codeCompanyMissing, decodeError(t, rec).Code)
	})

	t.Run("upsert company info", func(t *testing.T) {
		h := newTestTransport(&stubOrderService{}, &stubMenuService{}, &stubHomepageService{})

		rec := doRequest(t, h, http.MethodPut, "/api/homepage/company", `{"name":"Himalayan Flavors"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
