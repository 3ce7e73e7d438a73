package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "gstbill/docs" // registers the OpenAPI document
	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
// A nil authSvc leaves /api/v1 unauthenticated.
func Setup(
	cfg *config.Config,
	log *zap.Logger,
	authSvc service.AuthService,
	customerH *handler.CustomerHandler,
	hsnH *handler.HSNHandler,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        cfg.Company.Name,
			"home_state":  cfg.Company.StateCode,
			"rate_policy": cfg.Billing.RatePolicy,
			"version":     "v1",
		})
	})

	v1 := r.Group("/api/v1")
	if authSvc != nil {
		v1.Use(middleware.AuthMiddleware(authSvc))
	}

	customers := v1.Group("/customers")
	customers.GET("", customerH.List)
	customers.POST("", customerH.Create)
	customers.POST("/bulk", customerH.Bulk)
	customers.POST("/import", customerH.Import)
	customers.DELETE("/clear-all", customerH.ClearAll)
	customers.GET("/:id", customerH.GetByID)
	customers.PUT("/:id", customerH.Update)
	customers.DELETE("/:id", customerH.Delete)

	hsn := v1.Group("/hsn")
	hsn.GET("", hsnH.List)
	hsn.POST("", hsnH.Create)
	hsn.GET("/code/:code", hsnH.GetByCode)
	hsn.DELETE("/:id", hsnH.Delete)

	invoices := v1.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.POST("", invoiceH.Create)
	invoices.POST("/preview", invoiceH.Preview)
	invoices.GET("/export", invoiceH.Export)
	invoices.GET("/next/:series", invoiceH.NextNumber)
	invoices.GET("/type/:type", invoiceH.ListByType)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.GET("/:id/print", invoiceH.Print)
	invoices.GET("/:id/envelope", invoiceH.Envelope)
	invoices.GET("/:id/pdf", invoiceH.PDF)
	invoices.POST("/:id/archive", invoiceH.Archive)
	invoices.POST("/:id/email", invoiceH.Email)

	return r
}
