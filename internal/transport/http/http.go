package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/menusvc"
	"github.com/himalayan-flavors/rms-svc/internal/service/services/ordersvc"
	"github.com/himalayan-flavors/rms-svc/pkg/http/middleware/trace"
	"github.com/himalayan-flavors/rms-svc/pkg/logger"
)

type orderService interface {
	PlaceOrder(ctx context.Context, req order.PlaceOrderModel) (uuid.UUID, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, req order.PlaceOrderModel) error
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderResponse, error)
	GetAllOrders(ctx context.Context) ([]ordersvc.OrderResponse, error)
	GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]ordersvc.OrderResponse, error)
	GetOrdersByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]ordersvc.OrderResponse, error)
}

type menuService interface {
	AddCategory(ctx context.Context, c menucategory.MenuCategory) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, c menucategory.MenuCategory) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	ListCategories(ctx context.Context) ([]menucategory.MenuCategory, error)
	GetCategoryWithItems(ctx context.Context, categoryID uuid.UUID) (*menusvc.CategoryWithItems, error)
	AddItem(ctx context.Context, item menuitem.MenuItem) (uuid.UUID, error)
	UpdateItem(ctx context.Context, item menuitem.MenuItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*menuitem.MenuItem, error)
	SearchItems(ctx context.Context, name, description string) ([]menuitem.MenuItem, error)
}

type homepageService interface {
	AddSpecialGroup(ctx context.Context, g homepage.SpecialGroup) (uuid.UUID, error)
	ListSpecialGroups(ctx context.Context) ([]homepage.SpecialGroup, error)
	AddSpecialEvent(ctx context.Context, e homepage.SpecialEvent) (homepage.SpecialEvent, error)
	ListSpecialEvents(ctx context.Context) ([]homepage.SpecialEvent, error)
	GetCompanyInfo(ctx context.Context) (*homepage.CompanyInfo, error)
	UpsertCompanyInfo(ctx context.Context, info homepage.CompanyInfo) (uuid.UUID, error)
}

// HTTPTransport serves the restaurant management API.
type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	orderSvc    orderService
	menuSvc     menuService
	homepageSvc homepageService
}

func NewHTTPTransport(orderSvc orderService, menuSvc menuService, homepageSvc homepageService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:      server,
		router:      router,
		orderSvc:    orderSvc,
		menuSvc:     menuSvc,
		homepageSvc: homepageSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Router exposes the mux for tests.
func (h *HTTPTransport) Router() *chi.Mux {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/order", func(r chi.Router) {
			r.Post("/place-order", h.placeOrder)
			r.Get("/all", h.getAllOrders)
			r.Get("/user/{userID}", h.getOrdersByUser)
			r.Get("/user-date/{userID}", h.getOrdersByUserAndDateRange)
			r.Get("/{orderID}", h.getOrder)
			r.Put("/update-order/{orderID}", h.updateOrder)
			r.Delete("/delete-order/{orderID}", h.deleteOrder)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Post("/categories", h.addCategory)
			r.Get("/categories", h.listCategories)
			r.Put("/categories/{categoryID}", h.updateCategory)
			r.Delete("/categories/{categoryID}", h.deleteCategory)
			r.Get("/categories/{categoryID}/items", h.getCategoryWithItems)
			r.Post("/items", h.addItem)
			r.Get("/items/search", h.searchItems)
			r.Get("/items/{itemID}", h.getItem)
			r.Put("/items/{itemID}", h.updateItem)
			r.Delete("/items/{itemID}", h.deleteItem)
		})

		r.Route("/homepage", func(r chi.Router) {
			r.Post("/special-groups", h.addSpecialGroup)
			r.Get("/special-groups", h.listSpecialGroups)
			r.Post("/special-events", h.addSpecialEvent)
			r.Get("/special-events", h.listSpecialEvents)
			r.Get("/company", h.getCompanyInfo)
			r.Put("/company", h.upsertCompanyInfo)
		})
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
