package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-management-backend/internal/gateway"
	handler "invoice-management-backend/internal/handlers"
	"invoice-management-backend/internal/middleware"
	service "invoice-management-backend/internal/services/invoices"
)

const version = "1.0.0"

// RegisterRoutes wires gateways into services and services into handlers,
// then mounts the full HTTP surface. When requireAuth is set the invoice
// routes sit behind the bearer-token middleware; /auth/me always does.
func RegisterRoutes(r *gin.Engine, data gateway.DataGateway, identity gateway.IdentityGateway, requireAuth bool) {
	invoiceSvc := service.NewService(data)

	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc)
	authHandler := handler.NewAuthHandler(identity)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Invoice Management API",
			"version": version,
			"endpoints": gin.H{
				"get_all_invoices": "/invoices",
				"get_invoice":      "/invoices/single",
				"invoice_stats":    "/invoices/stats",
				"create_invoice":   "/invoices",
				"update_invoice":   "/invoices/{invoice_id}",
				"delete_invoice":   "/invoices/{invoice_id}",
				"signup":           "/auth/signup",
				"login":            "/auth/login",
				"me":               "/auth/me",
			},
		})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	invoices := r.Group("/invoices")
	if requireAuth {
		invoices.Use(middleware.RequireAuth(identity))
	}
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/single", invoiceHandler.GetSingle)
		invoices.GET("/stats", invoiceHandler.Stats)
		invoices.POST("", invoiceHandler.Create)
		invoices.PUT("/:invoice_id", invoiceHandler.Update)
		invoices.DELETE("/:invoice_id", invoiceHandler.Delete)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.RequireAuth(identity), authHandler.Me)
	}
}
