package routes

import (
	"net/http"

	"pos-backend/configs"
	"pos-backend/controllers"
	"pos-backend/entity"
	"pos-backend/middlewares"
	"pos-backend/repository"
	"pos-backend/services"
	"pos-backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs. Hub may be nil, which disables /ws/orders.
type Deps struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Products  *services.ProductService
	Orders    *services.OrderService
	Receipts  *services.ReceiptService
	Dashboard *services.DashboardService
	Hub       *ws.OrderHub

	CookieSecure    bool
	LoginRatePerMin int
}

// NewDeps builds repositories and services on top of one database handle.
func NewDeps(db *gorm.DB, cfg *configs.Config, revoker services.SessionRevoker, avatars services.AvatarStore, hub *ws.OrderHub) (*Deps, error) {
	policy, err := services.ParsePackagingPolicy(cfg.PackagingPolicy)
	if err != nil {
		return nil, err
	}
	pricing := services.Pricing{TaxRate: cfg.TaxRate, PackagingFee: cfg.PackagingFee, Policy: policy}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	var events services.OrderPublisher
	if hub != nil {
		events = hub
	}
	orders := services.NewOrderService(db, orderRepo, productRepo, pricing, events)

	return &Deps{
		Auth:      services.NewAuthService(userRepo, revoker, cfg.JWTSecret, cfg.JWTTTL),
		Users:     services.NewUserService(userRepo, avatars),
		Products:  services.NewProductService(productRepo),
		Orders:    orders,
		Receipts:  services.NewReceiptService(orders, cfg.ShopName),
		Dashboard: services.NewDashboardService(orderRepo, productRepo),
		Hub:       hub,

		CookieSecure:    cfg.CookieSecure,
		LoginRatePerMin: cfg.LoginRatePerMin,
	}, nil
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	authCtrl := controllers.NewAuthController(d.Auth, d.CookieSecure)
	userCtrl := controllers.NewUserController(d.Users)
	adminCtrl := controllers.NewAdminController(d.Users)
	productCtrl := controllers.NewProductController(d.Products)
	orderCtrl := controllers.NewOrderController(d.Orders, d.Receipts)
	dashCtrl := controllers.NewDashboardController(d.Dashboard)

	authed := middlewares.AuthMiddleware(d.Auth)
	adminOnly := middlewares.AuthMiddleware(d.Auth, entity.RoleAdmin)
	throttle := middlewares.NewRateLimiter(d.LoginRatePerMin).Limit()

	// Auth (public, throttled)
	a := r.Group("/auth")
	{
		a.POST("/register", throttle, authCtrl.Register)
		a.POST("/login", throttle, authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", authed)
	{
		aAuth.POST("/logout", authCtrl.Logout)
		aAuth.POST("/change-password", authCtrl.ChangePassword)
	}

	me := r.Group("/users/me", authed)
	{
		me.GET("", userCtrl.Me)
		me.PUT("", userCtrl.UpdateMe)
		me.POST("/avatar", userCtrl.UploadAvatar)
	}

	admin := r.Group("/admin", adminOnly)
	{
		admin.GET("/users", adminCtrl.ListUsers)
		admin.PUT("/users/:id", adminCtrl.UpdateUserRole)
	}

	products := r.Group("/products", authed)
	{
		products.GET("", productCtrl.List)
		products.GET("/:id", productCtrl.Get)
	}
	productsAdmin := r.Group("/products", adminOnly)
	{
		productsAdmin.POST("", productCtrl.Create)
		productsAdmin.PUT("/:id", productCtrl.Update)
		productsAdmin.DELETE("/:id", productCtrl.Delete)
	}

	orders := r.Group("/orders", authed)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.GET("/:id/receipt", orderCtrl.Receipt)
	}
	r.PATCH("/orders/:id/status", adminOnly, orderCtrl.UpdateStatus)

	r.GET("/dashboard/stats", authed, dashCtrl.Stats)

	if d.Hub != nil {
		r.GET("/ws/orders", adminOnly, d.Hub.HandleWebSocket)
	}
}
