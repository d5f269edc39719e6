package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/imenurepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/iorderrepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/outbox"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

type fakeOrderRepo struct {
	orders     map[uuid.UUID]order.Order
	inserted   []order.Order
	lastFilter *order.QueryOrdersModel
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]order.Order)}
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) error {
	r.orders[o.OrderID] = o
	r.inserted = append(r.inserted, o)

	return nil
}

func (r *fakeOrderRepo) Replace(_ context.Context, o order.Order) error {
	if _, ok := r.orders[o.OrderID]; !ok {
		return order.ErrOrderNotFound
	}
	r.orders[o.OrderID] = o

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, orderID uuid.UUID) error {
	if _, ok := r.orders[orderID]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.orders, orderID)

	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, orderID uuid.UUID) (*order.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, order.ErrOrderNotFound
	}

	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	r.lastFilter = filter

	result := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		result = append(result, o)
	}

	return result, nil
}

type fakeMenuRepo struct {
	items map[uuid.UUID]menuitem.MenuItem
}

func newFakeMenuRepo(items ...menuitem.MenuItem) *fakeMenuRepo {
	r := &fakeMenuRepo{items: make(map[uuid.UUID]menuitem.MenuItem)}
	for _, item := range items {
		r.items[item.ItemID] = item
	}

	return r
}

func (r *fakeMenuRepo) InsertCategory(context.Context, menucategory.MenuCategory) error { return nil }
func (r *fakeMenuRepo) UpdateCategory(context.Context, menucategory.MenuCategory) error { return nil }
func (r *fakeMenuRepo) DeleteCategory(context.Context, uuid.UUID) error                 { return nil }

func (r *fakeMenuRepo) GetCategoryByID(context.Context, uuid.UUID) (*menucategory.MenuCategory, error) {
	return nil, menucategory.ErrCategoryNotFound
}

func (r *fakeMenuRepo) GetCategoryByName(context.Context, string) (*menucategory.MenuCategory, error) {
	return nil, menucategory.ErrCategoryNotFound
}

func (r *fakeMenuRepo) ListCategories(context.Context) ([]menucategory.MenuCategory, error) {
	return nil, nil
}

func (r *fakeMenuRepo) InsertItem(context.Context, menuitem.MenuItem) error { return nil }
func (r *fakeMenuRepo) UpdateItem(context.Context, menuitem.MenuItem) error { return nil }
func (r *fakeMenuRepo) DeleteItem(context.Context, uuid.UUID) error         { return nil }

func (r *fakeMenuRepo) GetItemByID(_ context.Context, itemID uuid.UUID) (*menuitem.MenuItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, menuitem.ErrItemNotFound
	}

	return &item, nil
}

func (r *fakeMenuRepo) QueryItems(_ context.Context, filter *menuitem.QueryItemsModel) ([]menuitem.MenuItem, error) {
	var result []menuitem.MenuItem
	for _, id := range filter.ItemIDs {
		if item, ok := r.items[id]; ok {
			result = append(result, item)
		}
	}

	return result, nil
}

type fakeOutboxRepo struct {
	messages []outbox.OutboxMessage
}

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	r.messages = append(r.messages, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.OutboxMessage, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) Delete(context.Context, int64) error { return nil }

func (r *fakeOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

type fakeUnitOfWork struct {
	orderRepo  *fakeOrderRepo
	menuRepo   *fakeMenuRepo
	outboxRepo *fakeOutboxRepo

	began      bool
	committed  bool
	rolledBack bool
}

func newFakeUnitOfWork(menuRepo *fakeMenuRepo) *fakeUnitOfWork {
	return &fakeUnitOfWork{
		orderRepo:  newFakeOrderRepo(),
		menuRepo:   menuRepo,
		outboxRepo: &fakeOutboxRepo{},
	}
}

func (w *fakeUnitOfWork) Begin(context.Context) error {
	w.began = true

	return nil
}

func (w *fakeUnitOfWork) Commit(context.Context) error {
	w.committed = true

	return nil
}

func (w *fakeUnitOfWork) Rollback(context.Context) error {
	if !w.committed {
		w.rolledBack = true
	}

	return nil
}

func (w *fakeUnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return w.orderRepo
}

func (w *fakeUnitOfWork) MenuRepository() imenurepo.IMenuRepository {
	return w.menuRepo
}

func (w *fakeUnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return w.outboxRepo
}

func newTestService(work *fakeUnitOfWork, now time.Time) *OrderService {
	return &OrderService{
		newUOW: func() unitOfWork { return work },
		now:    func() time.Time { return now },
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func validRequest(lines ...order.RequestedLine) order.PlaceOrderModel {
	deliveryAt := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	return order.PlaceOrderModel{
		UserID:           uuid.New(),
		OrderedFoodItems: lines,
		DeliveryAddress: order.RequestedAddress{
			Street:     "Lazimpat Road 12",
			City:       "Kathmandu",
			PostalCode: "44600",
			Country:    "Nepal",
		},
		DeliveryDateTime: &deliveryAt,
		PaymentMethod:    payment.MethodCashOnDelivery,
		OrderStatus:      order.StatusPending,
		PaymentStatus:    payment.StatusPending,
	}
}

func TestPlaceOrderDerivesTotals(t *testing.T) {
	momo := menuitem.MenuItem{
		ItemID: uuid.New(),
		Name:   "Chicken Momo",
		Price:  mustDecimal(t, "5.99"),
	}
	thali := menuitem.MenuItem{
		ItemID: uuid.New(),
		Name:   "Dal Bhat Thali",
		Price:  mustDecimal(t, "12.99"),
	}

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	work := newFakeUnitOfWork(newFakeMenuRepo(momo, thali))
	svc := newTestService(work, now)

	req := validRequest(
		order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 2},
		order.RequestedLine{FoodItemID: thali.ItemID, Quantity: 1},
	)

	orderID, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, orderID)
	assert.True(t, work.committed)

	stored := work.orderRepo.orders[orderID]
	assert.Equal(t, req.UserID, stored.UserID)
	assert.Equal(t, now, stored.OrderDate)
	assert.Equal(t, "24.97", stored.TotalAmount.StringFixed(2))
	require.Len(t, stored.Lines, 2)

	first := stored.Lines[0]
	assert.Equal(t, "Chicken Momo", first.ItemName)
	assert.Equal(t, "5.99", first.UnitPrice.StringFixed(2))
	assert.Equal(t, "11.98", first.TotalPrice.StringFixed(2))

	second := stored.Lines[1]
	assert.Equal(t, "Dal Bhat Thali", second.ItemName)
	assert.Equal(t, "12.99", second.TotalPrice.StringFixed(2))

	assert.Equal(t, orderID, stored.Address.OrderID)
	assert.Equal(t, "Kathmandu", stored.Address.City)
	assert.Equal(t, payment.MethodCashOnDelivery, stored.Payment.Method)
	assert.Equal(t, now, stored.Payment.PaymentDate)

	require.Len(t, work.outboxRepo.messages, 1)
	assert.Equal(t, "order.placed", work.outboxRepo.messages[0].RoutingKey)
}

func TestPlaceOrderAsapClearsDeliveryTime(t *testing.T) {
	momo := menuitem.MenuItem{ItemID: uuid.New(), Name: "Veg Momo", Price: mustDecimal(t, "4.50")}

	work := newFakeUnitOfWork(newFakeMenuRepo(momo))
	svc := newTestService(work, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	req := validRequest(order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 1})
	req.IsAsSoonAsPossible = true

	orderID, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	stored := work.orderRepo.orders[orderID]
	assert.True(t, stored.IsAsSoonAsPossible)
	assert.Nil(t, stored.DeliveryDateTime)
}

func TestPlaceOrderUnknownItemAbortsWholeOrder(t *testing.T) {
	momo := menuitem.MenuItem{ItemID: uuid.New(), Name: "Veg Momo", Price: mustDecimal(t, "4.50")}

	work := newFakeUnitOfWork(newFakeMenuRepo(momo))
	svc := newTestService(work, time.Now().UTC())

	req := validRequest(
		order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 1},
		order.RequestedLine{FoodItemID: uuid.New(), Quantity: 1},
	)

	_, err := svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, menuitem.ErrItemNotFound)

	assert.False(t, work.committed)
	assert.True(t, work.rolledBack)
	assert.Empty(t, work.orderRepo.inserted)
	assert.Empty(t, work.outboxRepo.messages)
}

func TestPlaceOrderValidation(t *testing.T) {
	momo := menuitem.MenuItem{ItemID: uuid.New(), Name: "Veg Momo", Price: mustDecimal(t, "4.50")}

	tests := []struct {
		name   string
		mutate func(req *order.PlaceOrderModel)
	}{
		{
			name:   "missing user id",
			mutate: func(req *order.PlaceOrderModel) { req.UserID = uuid.Nil },
		},
		{
			name:   "no ordered items",
			mutate: func(req *order.PlaceOrderModel) { req.OrderedFoodItems = nil },
		},
		{
			name: "zero quantity",
			mutate: func(req *order.PlaceOrderModel) {
				req.OrderedFoodItems[0].Quantity = 0
			},
		},
		{
			name: "missing address",
			mutate: func(req *order.PlaceOrderModel) {
				req.DeliveryAddress = order.RequestedAddress{}
			},
		},
		{
			name: "no delivery time without asap",
			mutate: func(req *order.PlaceOrderModel) {
				req.IsAsSoonAsPossible = false
				req.DeliveryDateTime = nil
			},
		},
		{
			name:   "unknown order status",
			mutate: func(req *order.PlaceOrderModel) { req.OrderStatus = "misplaced" },
		},
		{
			name:   "unknown payment method",
			mutate: func(req *order.PlaceOrderModel) { req.PaymentMethod = "barter" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := newFakeUnitOfWork(newFakeMenuRepo(momo))
			svc := newTestService(work, time.Now().UTC())

			req := validRequest(order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 1})
			tt.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), req)
			require.ErrorIs(t, err, order.ErrInvalidRequest)
			assert.False(t, work.began)
		})
	}
}

func TestUpdateOrderPreservesCreationTimestampAndUser(t *testing.T) {
	momo := menuitem.MenuItem{ItemID: uuid.New(), Name: "Veg Momo", Price: mustDecimal(t, "4.50")}
	sekuwa := menuitem.MenuItem{ItemID: uuid.New(), Name: "Pork Sekuwa", Price: mustDecimal(t, "9.25")}

	placedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	work := newFakeUnitOfWork(newFakeMenuRepo(momo, sekuwa))
	svc := newTestService(work, placedAt)

	req := validRequest(order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 1})
	orderID, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	updatedAt := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return updatedAt }

	update := validRequest(order.RequestedLine{FoodItemID: sekuwa.ItemID, Quantity: 3})

	require.NoError(t, svc.UpdateOrder(context.Background(), orderID, update))

	stored := work.orderRepo.orders[orderID]
	assert.Equal(t, placedAt, stored.OrderDate)
	assert.Equal(t, req.UserID, stored.UserID)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, "Pork Sekuwa", stored.Lines[0].ItemName)
	assert.Equal(t, "27.75", stored.TotalAmount.StringFixed(2))
	assert.Equal(t, updatedAt, stored.Payment.PaymentDate)
}

func TestUpdateOrderNotFound(t *testing.T) {
	momo := menuitem.MenuItem{ItemID: uuid.New(), Name: "Veg Momo", Price: mustDecimal(t, "4.50")}

	work := newFakeUnitOfWork(newFakeMenuRepo(momo))
	svc := newTestService(work, time.Now().UTC())

	req := validRequest(order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 1})

	err := svc.UpdateOrder(context.Background(), uuid.New(), req)
	require.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.False(t, work.committed)
}

func TestDeleteOrder(t *testing.T) {
	momo := menuitem.MenuItem{ItemID: uuid.New(), Name: "Veg Momo", Price: mustDecimal(t, "4.50")}

	work := newFakeUnitOfWork(newFakeMenuRepo(momo))
	svc := newTestService(work, time.Now().UTC())

	req := validRequest(order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 1})
	orderID, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), orderID))
	assert.Empty(t, work.orderRepo.orders)

	require.Len(t, work.outboxRepo.messages, 2)
	assert.Equal(t, "order.deleted", work.outboxRepo.messages[1].RoutingKey)

	err = svc.DeleteOrder(context.Background(), orderID)
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetOrdersByUserAndDateRange(t *testing.T) {
	t.Run("bounds are truncated to dates", func(t *testing.T) {
		work := newFakeUnitOfWork(newFakeMenuRepo())
		svc := newTestService(work, time.Now().UTC())

		start := time.Date(2026, 3, 10, 17, 45, 12, 0, time.UTC)
		end := time.Date(2026, 3, 12, 3, 2, 1, 0, time.UTC)

		_, err := svc.GetOrdersByUserAndDateRange(context.Background(), uuid.New(), start, end)
		require.NoError(t, err)

		require.NotNil(t, work.orderRepo.lastFilter)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *work.orderRepo.lastFilter.StartDate)
		assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), *work.orderRepo.lastFilter.EndDate)
	})

	t.Run("same day is a valid range", func(t *testing.T) {
		work := newFakeUnitOfWork(newFakeMenuRepo())
		svc := newTestService(work, time.Now().UTC())

		day := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

		_, err := svc.GetOrdersByUserAndDateRange(context.Background(), uuid.New(), day, day)
		require.NoError(t, err)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		work := newFakeUnitOfWork(newFakeMenuRepo())
		svc := newTestService(work, time.Now().UTC())

		start := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

		_, err := svc.GetOrdersByUserAndDateRange(context.Background(), uuid.New(), start, end)
		require.ErrorIs(t, err, order.ErrInvalidRequest)
	})
}

func TestQueryOrdersReturnsEmptySlice(t *testing.T) {
	work := newFakeUnitOfWork(newFakeMenuRepo())
	svc := newTestService(work, time.Now().UTC())

	orders, err := svc.GetAllOrders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestGetOrderProjectsCurrentCatalogDetails(t *testing.T) {
	momo := menuitem.MenuItem{
		ItemID:      uuid.New(),
		Name:        "Chicken Momo",
		Description: "Steamed dumplings",
		Price:       mustDecimal(t, "5.99"),
	}

	work := newFakeUnitOfWork(newFakeMenuRepo(momo))
	svc := newTestService(work, time.Now().UTC())

	req := validRequest(order.RequestedLine{FoodItemID: momo.ItemID, Quantity: 2})
	orderID, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	resp, err := svc.GetOrder(context.Background(), orderID)
	require.NoError(t, err)

	require.Len(t, resp.OrderedItems, 1)
	line := resp.OrderedItems[0]
	assert.Equal(t, "Chicken Momo", line.ItemName)
	require.NotNil(t, line.FoodItem)
	assert.Equal(t, "Steamed dumplings", line.FoodItem.Description)

	// The item snapshot survives even if the item later leaves the catalog.
	delete(work.menuRepo.items, momo.ItemID)

	resp, err = svc.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, resp.OrderedItems, 1)
	assert.Equal(t, "Chicken Momo", resp.OrderedItems[0].ItemName)
	assert.Nil(t, resp.OrderedItems[0].FoodItem)
}

func TestGetOrderNotFound(t *testing.T) {
	work := newFakeUnitOfWork(newFakeMenuRepo())
	svc := newTestService(work, time.Now().UTC())

	_, err := svc.GetOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}
