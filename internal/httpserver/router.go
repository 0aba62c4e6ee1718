package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	catalogsvc "salonpos/internal/service/catalog"
	checkoutsvc "salonpos/internal/service/checkout"
	treatmentsvc "salonpos/internal/service/treatment"
)

// Deps bundles the services the router needs.
type Deps struct {
	TenantResolver *TenantResolver
	CatalogSvc     *catalogsvc.Service
	TreatmentSvc   *treatmentsvc.Service
	CheckoutSvc    *checkoutsvc.Service
	PaymentMethods paymentMethodLister
	Clients        clientStore
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/", tenantMiddleware(deps.TenantResolver))
	{
		api.GET("/catalog", searchCatalogHandler(deps.CatalogSvc))
		api.GET("/payment-methods", listPaymentMethodsHandler(deps.PaymentMethods))

		api.GET("/clients", listClientsHandler(deps.Clients))
		api.POST("/clients", createClientHandler(deps.Clients))

		api.POST("/treatments", createTreatmentHandler(deps.TreatmentSvc))
		api.GET("/treatments/:id", getTreatmentHandler(deps.TreatmentSvc))
		api.PUT("/treatments/:id/discount", setDiscountHandler(deps.TreatmentSvc))
		api.POST("/treatments/:id/lines", addLineHandler(deps.TreatmentSvc))
		api.DELETE("/treatments/:id/lines/:lineID", removeLineHandler(deps.TreatmentSvc))

		api.POST("/treatments/:id/checkout", openCheckoutHandler(deps.CheckoutSvc))
		api.GET("/checkout/:sid", getCheckoutHandler(deps.CheckoutSvc))
		api.POST("/checkout/:sid/allocations", addAllocationHandler(deps.CheckoutSvc))
		api.DELETE("/checkout/:sid/allocations/:aid", removeAllocationHandler(deps.CheckoutSvc))
		api.POST("/checkout/:sid/finalize", finalizeCheckoutHandler(deps.CheckoutSvc))
		api.DELETE("/checkout/:sid", cancelCheckoutHandler(deps.CheckoutSvc))
	}

	return router
}
