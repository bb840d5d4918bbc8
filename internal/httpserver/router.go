package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

// ProductService is the catalog and admin product surface the router needs.
type ProductService interface {
	Catalog(ctx context.Context) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in productsvc.UpdateInput) (*domain.Product, error)
	SetVisibility(ctx context.Context, id int64, visible bool) (*domain.Product, error)
	Restock(ctx context.Context, id int64, qty int) (*domain.Product, error)
}

// CartService is the cart surface the router needs.
type CartService interface {
	View(ctx context.Context, customerID int64) (*domain.Cart, error)
	Add(ctx context.Context, customerID, productID int64, qty int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, customerID, productID int64, qty int) (*domain.Cart, error)
	Remove(ctx context.Context, customerID, productID int64) (*domain.Cart, error)
	Clear(ctx context.Context, customerID int64) error
}

// OrderService is the order lifecycle surface the router needs.
type OrderService interface {
	Place(ctx context.Context, in ordersvc.PlaceInput) (*domain.Order, error)
	Cancel(ctx context.Context, orderID int64, actor ordersvc.Actor) (*domain.Order, error)
	Ship(ctx context.Context, orderID int64) (*domain.Order, error)
	Complete(ctx context.Context, orderID int64) (*domain.Order, error)
	Get(ctx context.Context, orderID int64, actor ordersvc.Actor) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	ProductSvc ProductService
	CartSvc    CartService
	OrderSvc   OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listCatalogHandler(deps.ProductSvc))
	router.GET("/products/:productID", getCatalogProductHandler(deps.ProductSvc))

	customer := router.Group("", requireCustomer())
	{
		customer.GET("/cart", viewCartHandler(deps.CartSvc))
		customer.DELETE("/cart", clearCartHandler(deps.CartSvc))
		customer.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		customer.PATCH("/cart/items/:productID", updateCartItemHandler(deps.CartSvc))
		customer.DELETE("/cart/items/:productID", removeCartItemHandler(deps.CartSvc))

		customer.POST("/orders", placeOrderHandler(deps.OrderSvc))
		customer.GET("/orders", listMyOrdersHandler(deps.OrderSvc))
		customer.GET("/orders/:orderID", getMyOrderHandler(deps.OrderSvc))
		customer.POST("/orders/:orderID/cancel", cancelMyOrderHandler(deps.OrderSvc))
	}

	admin := router.Group("/admin", requireAdmin())
	{
		admin.GET("/products", listAllProductsHandler(deps.ProductSvc))
		admin.POST("/products", createProductHandler(deps.ProductSvc))
		admin.PUT("/products/:productID", updateProductHandler(deps.ProductSvc))
		admin.PATCH("/products/:productID/visibility", setVisibilityHandler(deps.ProductSvc))
		admin.POST("/products/:productID/restock", restockHandler(deps.ProductSvc))

		admin.GET("/orders", listAllOrdersHandler(deps.OrderSvc))
		admin.GET("/orders/:orderID", getAnyOrderHandler(deps.OrderSvc))
		admin.POST("/orders/:orderID/ship", shipOrderHandler(deps.OrderSvc))
		admin.POST("/orders/:orderID/complete", completeOrderHandler(deps.OrderSvc))
		admin.POST("/orders/:orderID/cancel", cancelAnyOrderHandler(deps.OrderSvc))
	}

	return router, nil
}
