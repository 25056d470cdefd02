package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/service/access"
	authsvc "storefront/internal/service/auth"
	productsvc "storefront/internal/service/product"
)

type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (string, domain.Identity, error)
	Login(ctx context.Context, email, password string) (string, domain.Identity, error)
	VerifyToken(ctx context.Context, token string) (domain.Identity, error)
	Profile(ctx context.Context, id domain.Identity) (domain.Identity, error)
	ListUsers(ctx context.Context) ([]domain.Identity, error)
	UpdateUser(ctx context.Context, actor domain.Identity, id string, in authsvc.UpdateInput) (domain.Identity, error)
}

type ProductService interface {
	List(ctx context.Context, category domain.Category) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.CategoryInfo, error)
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.CartView, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.CartView, error)
	Clear(ctx context.Context, userID string) (*domain.CartView, error)
}

// Deps are the services and probes the router needs.
type Deps struct {
	AuthSvc     AuthService
	ProductSvc  ProductService
	CategorySvc CategoryService
	CartSvc     CartService
	Checks      []ReadinessCheck
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.ProductSvc == nil || d.CategorySvc == nil || d.CartSvc == nil {
		return errors.New("httpserver: all services are required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	writer := zap.NewStdLog(logger.Named("access")).Writer()
	router.Use(
		gin.LoggerWithWriter(writer),
		gin.CustomRecoveryWithWriter(writer, recoveryHandler(logger)),
		cors.New(corsConfig(corsOrigins)),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Checks))

	h := &handlers{
		logger:   logger.Named("api"),
		auth:     deps.AuthSvc,
		products: deps.ProductSvc,
		category: deps.CategorySvc,
		carts:    deps.CartSvc,
	}
	authenticated := requireAuth(h.auth, h.logger)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.GET("/me", authenticated, requireRoles(access.Authenticated), h.me)

	users := api.Group("/users", authenticated)
	users.GET("", requireRoles(access.AdminOnly), h.listUsers)
	users.GET("/me", requireRoles(access.Authenticated), h.me)
	users.PUT("/:id", h.updateUser)

	products := api.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/:id", h.getProduct)
	products.POST("", authenticated, requireRoles(access.AdminOnly), h.createProduct)
	products.PUT("/:id", authenticated, requireRoles(access.AdminOnly), h.updateProduct)
	products.DELETE("/:id", authenticated, requireRoles(access.AdminOnly), h.deleteProduct)

	api.GET("/categories", h.listCategories)

	cart := api.Group("/cart", authenticated, requireRoles(access.Authenticated))
	cart.GET("", h.getCart)
	cart.POST("/add", h.addToCart)
	cart.PUT("/update/:productId", h.updateCartItem)
	cart.DELETE("/remove/:productId", h.removeCartItem)
	cart.DELETE("/clear", h.clearCart)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

type handlers struct {
	logger   *zap.Logger
	auth     AuthService
	products ProductService
	category CategoryService
	carts    CartService
}
