package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

type placeOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	Notes           string `json:"notes"`
}

func placeOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.Place(c.Request.Context(), ordersvc.PlaceInput{
			CustomerID:      customerID(c),
			ShippingAddress: req.ShippingAddress,
			PhoneNumber:     req.PhoneNumber,
			PaymentMethod:   req.PaymentMethod,
			Notes:           req.Notes,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listMyOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListForCustomer(c.Request.Context(), customerID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getMyOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "orderID")
		if !ok {
			return
		}
		order, err := svc.Get(c.Request.Context(), id, ordersvc.Actor{CustomerID: customerID(c)})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func cancelMyOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "orderID")
		if !ok {
			return
		}
		order, err := svc.Cancel(c.Request.Context(), id, ordersvc.Actor{CustomerID: customerID(c)})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listAllOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getAnyOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "orderID")
		if !ok {
			return
		}
		order, err := svc.Get(c.Request.Context(), id, ordersvc.Actor{Admin: true})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func cancelAnyOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "orderID")
		if !ok {
			return
		}
		order, err := svc.Cancel(c.Request.Context(), id, ordersvc.Actor{Admin: true})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func shipOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "orderID")
		if !ok {
			return
		}
		order, err := svc.Ship(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func completeOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "orderID")
		if !ok {
			return
		}
		order, err := svc.Complete(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
