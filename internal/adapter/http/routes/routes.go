package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ecommerce_api/internal/adapter/http/handlers"
	"ecommerce_api/internal/adapter/http/middleware"
	"ecommerce_api/internal/adapter/persistence/repository"
	"ecommerce_api/internal/infrastructure/awsclient"
	"ecommerce_api/internal/infrastructure/config"
	"ecommerce_api/internal/infrastructure/events"
	"ecommerce_api/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server and block until SIGINT or SIGTERM.
func Run() {
	cfg := config.Load()
	ctx := context.Background()

	awsCfg, err := awsclient.NewConfig(ctx, cfg.AWS)
	if err != nil {
		log.Fatalf("failed to create aws config: %v", err)
	}
	ddb := awsclient.NewDynamoDB(awsCfg)

	publisher, closePublisher, err := buildPublisher(cfg, awsCfg, ddb)
	if err != nil {
		log.Fatalf("failed to configure event publisher: %v", err)
	}
	dispatcher := events.NewDispatcher(publisher, events.Options{
		QueueSize:      cfg.Events.QueueSize,
		Workers:        cfg.Events.Workers,
		PublishTimeout: cfg.Events.PublishTimeout,
	})
	dispatcher.Start()

	cache, closeCache := buildProductCache(cfg)

	productRepo := repository.NewProductDynamoRepository(ddb, cfg.Tables.Products, cfg.Tables.ProductsCodeIndex)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.Tables.Orders)

	productUseCase := usecase.NewProductUseCase(productRepo, dispatcher, cache)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo)

	router := newRouter(handlers.NewProductHandler(productUseCase), handlers.NewOrderHandler(orderUseCase))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("[http][server] listening addr=%s events_backend=%s", srv.Addr, cfg.Events.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	log.Printf("[http][server] shutdown signal=%s", s)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// The server stops before the queue closes; handlers never dispatch into a closed queue.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http][server] shutdown error err=%v", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Printf("[events][dispatcher] drain timeout stats=%+v", dispatcher.Stats())
	}
	if err := closePublisher(); err != nil {
		log.Printf("[events][publisher] close error err=%v", err)
	}
	if err := closeCache(); err != nil {
		log.Printf("[cache][redis] close error err=%v", err)
	}
	log.Printf("[http][server] stopped")
}

func newRouter(productHandler *handlers.ProductHandler, orderHandler *handlers.OrderHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCatalogRoutes(v1, productHandler)
	addOrderRoutes(v1, orderHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.RequestID())
}
