package main

import (
	"context"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"backend/pkg/logger"
	"backend/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Vendor Management API
// @version         1.0
// @description     Vendor management module of a church ERP: permission-gated CRUD for vendors, categories, contacts, and documents.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load("vendor-management")

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log := logger.Get()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("connected to PostgreSQL")

	middleware.InitAuthMiddleware(db)

	// Set up WebSocket Hub for vendor change events
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	roleService := service.NewRoleService(roleRepo, txManager)
	userService := service.NewUserService(userRepo, roleRepo, txManager)
	vendorService := service.NewVendorService(vendorRepo, txManager, wsHub)
	categoryService := service.NewCategoryService(categoryRepo, txManager)
	documentService := service.NewDocumentService(documentRepo, vendorRepo)

	// Built-in roles must exist before any permission check can pass
	if err := roleService.SeedDefaultRoles(context.Background()); err != nil {
		log.Fatal("failed to seed default roles", zap.Error(err))
	}

	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	documentHandler := handler.NewDocumentHandler(documentService)

	// Set up Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())

	httpMetrics := metrics.NewHTTPMetrics(cfg.ServiceName)
	router.Use(httpMetrics.Middleware())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	roleHandler.RegisterRoutes(router.Group(""))
	vendorHandler.RegisterRoutes(router.Group(""))
	categoryHandler.RegisterRoutes(router.Group(""))
	documentHandler.RegisterRoutes(router.Group(""))

	log.Info("server listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
