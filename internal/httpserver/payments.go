package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"salonpos/internal/domain"
)

type paymentMethodLister interface {
	ListMethods(ctx context.Context, tenantID string, activeOnly bool) ([]domain.PaymentMethod, error)
}

func listPaymentMethodsHandler(store paymentMethodLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := tenantFrom(c)
		methods, err := store.ListMethods(c.Request.Context(), tenant.ID, true)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": methods, "total": len(methods)})
	}
}
