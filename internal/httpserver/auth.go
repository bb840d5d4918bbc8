package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity arrives in trusted headers set by the gateway in front of this
// service. Authentication itself lives there, not here.
const (
	headerCustomerID = "X-Customer-ID"
	headerAdmin      = "X-Admin"

	ctxCustomerID = "customerID"
)

func requireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader(headerCustomerID), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + headerCustomerID + " header"})
			return
		}
		c.Set(ctxCustomerID, id)
		c.Next()
	}
}

func customerID(c *gin.Context) int64 {
	return c.GetInt64(ctxCustomerID)
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(headerAdmin) != "true" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
