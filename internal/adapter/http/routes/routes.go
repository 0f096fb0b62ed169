package routes

import (
	"context"
	"log"

	_ "oficina_motos/docs"
	"oficina_motos/internal/adapter/http/handlers"
	"oficina_motos/internal/infrastructure/config"
	"oficina_motos/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	store, err := newStorage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.StorageDriver, err)
	}

	budgetUseCase := usecase.NewBudgetUseCase(store.budgets, store.links)
	workflowUseCase := usecase.NewBudgetWorkflowUseCase(store.budgets, store.links, store.uow)
	budgetHandler := handlers.NewBudgetHandler(budgetUseCase, workflowUseCase)

	router := NewRouter(budgetHandler)
	log.Printf("[http] listening addr=%s storage=%s", cfg.Addr(), cfg.StorageDriver)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter registers every public route on a fresh engine.
func NewRouter(budgetHandler *handlers.BudgetHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBudgetRoutes(v1, budgetHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
