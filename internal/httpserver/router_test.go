package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

type stubProductSvc struct {
	product *domain.Product
	list    []domain.Product
	err     error
}

func (s *stubProductSvc) Catalog(context.Context) ([]domain.Product, error) {
	return s.list, s.err
}
func (s *stubProductSvc) List(context.Context) ([]domain.Product, error) { return s.list, s.err }
func (s *stubProductSvc) Get(context.Context, int64) (*domain.Product, error) {
	return s.product, s.err
}
func (s *stubProductSvc) Create(context.Context, productsvc.CreateInput) (*domain.Product, error) {
	return s.product, s.err
}
func (s *stubProductSvc) Update(context.Context, int64, productsvc.UpdateInput) (*domain.Product, error) {
	return s.product, s.err
}
func (s *stubProductSvc) SetVisibility(context.Context, int64, bool) (*domain.Product, error) {
	return s.product, s.err
}
func (s *stubProductSvc) Restock(context.Context, int64, int) (*domain.Product, error) {
	return s.product, s.err
}

type stubCartSvc struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartSvc) View(context.Context, int64) (*domain.Cart, error) { return s.cart, s.err }
func (s *stubCartSvc) Add(context.Context, int64, int64, int) (*domain.Cart, error) {
	return s.cart, s.err
}
func (s *stubCartSvc) UpdateQuantity(context.Context, int64, int64, int) (*domain.Cart, error) {
	return s.cart, s.err
}
func (s *stubCartSvc) Remove(context.Context, int64, int64) (*domain.Cart, error) {
	return s.cart, s.err
}
func (s *stubCartSvc) Clear(context.Context, int64) error { return s.err }

type stubOrderSvc struct {
	order *domain.Order
	list  []domain.Order
	err   error

	gotActor ordersvc.Actor
	gotInput ordersvc.PlaceInput
}

func (s *stubOrderSvc) Place(_ context.Context, in ordersvc.PlaceInput) (*domain.Order, error) {
	s.gotInput = in
	return s.order, s.err
}
func (s *stubOrderSvc) Cancel(_ context.Context, _ int64, actor ordersvc.Actor) (*domain.Order, error) {
	s.gotActor = actor
	return s.order, s.err
}
func (s *stubOrderSvc) Ship(context.Context, int64) (*domain.Order, error)     { return s.order, s.err }
func (s *stubOrderSvc) Complete(context.Context, int64) (*domain.Order, error) { return s.order, s.err }
func (s *stubOrderSvc) Get(_ context.Context, _ int64, actor ordersvc.Actor) (*domain.Order, error) {
	s.gotActor = actor
	return s.order, s.err
}
func (s *stubOrderSvc) ListForCustomer(context.Context, int64) ([]domain.Order, error) {
	return s.list, s.err
}
func (s *stubOrderSvc) List(context.Context) ([]domain.Order, error) { return s.list, s.err }

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.ProductSvc == nil {
		deps.ProductSvc = &stubProductSvc{}
	}
	if deps.CartSvc == nil {
		deps.CartSvc = &stubCartSvc{}
	}
	if deps.OrderSvc == nil {
		deps.OrderSvc = &stubOrderSvc{}
	}
	router, err := buildRouter(log.New(io.Discard, "", 0), nil, deps)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBuildRouterRejectsMissingDeps(t *testing.T) {
	_, err := buildRouter(log.New(io.Discard, "", 0), nil, Deps{})
	if err == nil {
		t.Fatal("expected error for missing deps")
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartRequiresCustomerHeader(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(headerCustomerID, "not-a-number")
	if rec := serve(router, req); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad header, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireAdminHeader(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set(headerAdmin, "true")
	if rec := serve(router, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCatalogHidesInvisibleProduct(t *testing.T) {
	price, _ := domain.ParseMoney("100", domain.CurrencyVND)
	hidden, err := domain.NewProduct("Ceramic Mug", "", price, 5)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	hidden.ID = 1
	hidden.Hide()
	router := testRouter(t, Deps{ProductSvc: &stubProductSvc{product: hidden}})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestViewCart(t *testing.T) {
	cart := domain.NewCart(7)
	router := testRouter(t, Deps{CartSvc: &stubCartSvc{cart: cart}})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(headerCustomerID, "7")
	rec := serve(router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"customerId":7`) {
		t.Fatalf("unexpected body %s", rec.Body)
	}
}

func TestAddCartItemInsufficientStock(t *testing.T) {
	svc := &stubCartSvc{err: &domain.InsufficientStockError{ProductID: 1, Requested: 6, Available: 5}}
	router := testRouter(t, Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"productId":1,"quantity":6}`))
	req.Header.Set(headerCustomerID, "7")
	req.Header.Set("Content-Type", "application/json")
	rec := serve(router, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
}

func TestPlaceOrder(t *testing.T) {
	svc := &stubOrderSvc{order: &domain.Order{ID: 3, CustomerID: 7, Status: domain.OrderStatusPending}}
	router := testRouter(t, Deps{OrderSvc: svc})

	body := `{"shippingAddress":"12 Nguyen Trai, District 1","phoneNumber":"0901234567","paymentMethod":"COD"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set(headerCustomerID, "7")
	req.Header.Set("Content-Type", "application/json")
	rec := serve(router, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if svc.gotInput.CustomerID != 7 || svc.gotInput.PaymentMethod != "COD" {
		t.Fatalf("unexpected input %+v", svc.gotInput)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	router := testRouter(t, Deps{OrderSvc: &stubOrderSvc{err: domain.ErrEmptyCart}})

	body := `{"shippingAddress":"12 Nguyen Trai, District 1","phoneNumber":"0901234567","paymentMethod":"COD"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set(headerCustomerID, "7")
	req.Header.Set("Content-Type", "application/json")
	rec := serve(router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
}

func TestCancelOrderStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not owner", domain.ErrUnauthorized, http.StatusForbidden},
		{"already cancelled", &domain.InvalidOrderStatusTransitionError{From: domain.OrderStatusCancelled, To: domain.OrderStatusCancelled}, http.StatusConflict},
		{"not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"lost race", domain.ErrConcurrentModification, http.StatusConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(t, Deps{OrderSvc: &stubOrderSvc{err: tc.err}})
			req := httptest.NewRequest(http.MethodPost, "/orders/3/cancel", nil)
			req.Header.Set(headerCustomerID, "7")
			rec := serve(router, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body)
			}
		})
	}
}

func TestCancelCarriesActor(t *testing.T) {
	svc := &stubOrderSvc{order: &domain.Order{ID: 3, Status: domain.OrderStatusCancelled}}
	router := testRouter(t, Deps{OrderSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/orders/3/cancel", nil)
	req.Header.Set(headerCustomerID, "7")
	if rec := serve(router, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotActor.Admin || svc.gotActor.CustomerID != 7 {
		t.Fatalf("unexpected actor %+v", svc.gotActor)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/orders/3/cancel", nil)
	req.Header.Set(headerAdmin, "true")
	if rec := serve(router, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !svc.gotActor.Admin {
		t.Fatalf("unexpected actor %+v", svc.gotActor)
	}
}

func TestBadIDParam(t *testing.T) {
	router := testRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
	req.Header.Set(headerCustomerID, "7")
	rec := serve(router, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

var _ CartService = (*cartsvc.Service)(nil)
var _ OrderService = (*ordersvc.Service)(nil)
var _ ProductService = (*productsvc.Service)(nil)
