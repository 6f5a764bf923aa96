package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/configs"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/controllers"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/middlewares"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/notify"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/ws"
)

// Deps carries the long-lived pieces main builds before the router.
type Deps struct {
	DB       *gorm.DB
	Cfg      configs.Config
	Log      *zap.Logger
	Carts    *cart.Manager
	Notifier notify.Notifier
	Hub      *ws.CartHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// repositories
	userRepo := repository.NewUserRepository(d.DB)
	catRepo := repository.NewCategoryRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	custRepo := repository.NewCustomizationRepository(d.DB)
	packRepo := repository.NewPackageRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	dashRepo := repository.NewDashboardRepository(d.DB)

	// services
	authSvc := services.NewAuthService(userRepo, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	catSvc := services.NewCategoryService(catRepo)
	menuSvc := services.NewMenuService(menuRepo, custRepo)
	custSvc := services.NewCustomizationService(custRepo)
	packSvc := services.NewPackageService(packRepo)
	cartSvc := services.NewCartService(d.Carts, menuRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, cartRepo, menuRepo, d.Carts, d.Notifier, d.Log)
	statusSvc := services.NewOrderStatusService(orderRepo, d.Notifier, d.Log)
	dashSvc := services.NewDashboardService(dashRepo)
	userSvc := services.NewUserAdminService(userRepo)

	// controllers
	authCtl := controllers.NewAuthController(authSvc)
	catCtl := controllers.NewCategoryController(catSvc)
	menuCtl := controllers.NewMenuController(menuSvc)
	custCtl := controllers.NewCustomizationController(custSvc)
	packCtl := controllers.NewPackageController(packSvc)
	cartCtl := controllers.NewCartController(cartSvc)
	orderCtl := controllers.NewOrderController(orderSvc)
	adminOrderCtl := controllers.NewAdminOrderController(orderRepo, orderSvc, statusSvc)
	dashCtl := controllers.NewDashboardController(dashSvc)
	userCtl := controllers.NewUserAdminController(userSvc)

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// ---------------- storefront (public) ----------------
	r.POST("/auth/register", authCtl.Register)
	r.POST("/auth/login", authCtl.Login)

	r.GET("/categories", catCtl.List)
	r.GET("/menu", menuCtl.List)
	r.GET("/menu/:id", menuCtl.Get)
	r.GET("/packages", packCtl.List)
	r.GET("/packages/:id", packCtl.Get)

	// ---------------- signed-in customers ----------------
	user := r.Group("", middlewares.AuthMiddleware(d.Cfg.JWTSecret))
	{
		user.GET("/profile", authCtl.Me)
		user.PATCH("/profile", authCtl.UpdateProfile)
		user.GET("/profile/orders", orderCtl.ListMine)

		user.GET("/cart", cartCtl.Get)
		user.POST("/cart/items", cartCtl.AddItem)
		user.PATCH("/cart/items/:lineId", cartCtl.UpdateItem)
		user.DELETE("/cart/items/:lineId", cartCtl.RemoveItem)
		user.DELETE("/cart", cartCtl.Clear)
		user.POST("/cart/flush", cartCtl.Flush)
		user.POST("/cart/sync", cartCtl.SyncNow)
		user.POST("/cart/sync/retry", cartCtl.RetrySync)
		user.GET("/cart/sync/status", cartCtl.SyncStatus)

		user.POST("/checkout", orderCtl.Checkout)
		user.GET("/orders/:id", orderCtl.Get)
		user.GET("/orders/:id/timeline", orderCtl.Timeline)
		user.POST("/orders/:id/cancel", orderCtl.Cancel)
	}

	// live cart updates, browsers pass the token as ?token=
	r.GET("/ws/cart", middlewares.WSAuthMiddleware(d.Cfg.JWTSecret), d.Hub.HandleWebSocket)

	// ---------------- back office ----------------
	admin := r.Group("/admin", middlewares.AuthMiddleware(d.Cfg.JWTSecret, "admin"))
	{
		admin.GET("/dashboard", dashCtl.Overview)

		admin.GET("/orders", adminOrderCtl.List)
		admin.GET("/orders/:id", adminOrderCtl.Get)
		admin.PATCH("/orders/:id/status", adminOrderCtl.UpdateStatus)
		admin.PATCH("/orders/status", adminOrderCtl.BulkUpdateStatus)

		admin.GET("/categories", catCtl.ListAll)
		admin.GET("/categories/:id", catCtl.Get)
		admin.POST("/categories", catCtl.Create)
		admin.PATCH("/categories/:id", catCtl.Update)
		admin.DELETE("/categories/:id", catCtl.Delete)

		admin.GET("/menu", menuCtl.ListAll)
		admin.GET("/menu/:id", menuCtl.Get)
		admin.POST("/menu", menuCtl.Create)
		admin.PATCH("/menu/:id", menuCtl.Update)
		admin.PATCH("/menu/:id/availability", menuCtl.SetAvailability)
		admin.PUT("/menu/:id/customizations", menuCtl.SetCustomizations)
		admin.POST("/menu/:id/image", menuCtl.UploadImage)
		admin.DELETE("/menu/:id", menuCtl.Delete)

		admin.GET("/customizations", custCtl.List)
		admin.GET("/customizations/:id", custCtl.Get)
		admin.POST("/customizations", custCtl.Create)
		admin.PATCH("/customizations/:id", custCtl.Update)
		admin.DELETE("/customizations/:id", custCtl.Delete)

		admin.GET("/packages", packCtl.ListAll)
		admin.GET("/packages/:id", packCtl.Get)
		admin.POST("/packages", packCtl.Create)
		admin.PATCH("/packages/:id", packCtl.Update)
		admin.DELETE("/packages/:id", packCtl.Delete)

		admin.GET("/users", userCtl.List)
		admin.GET("/users/:id", userCtl.Get)
		admin.PATCH("/users/:id/role", userCtl.SetRole)
		admin.DELETE("/users/:id", userCtl.Delete)
	}
}
