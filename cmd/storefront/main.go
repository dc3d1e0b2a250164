package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	cartapp "github.com/wyfcoding/shopping/internal/cart/application"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	cartmem "github.com/wyfcoding/shopping/internal/cart/infrastructure/persistence/memory"
	cartredis "github.com/wyfcoding/shopping/internal/cart/infrastructure/persistence/redis"
	carthttp "github.com/wyfcoding/shopping/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/shopping/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	catalogmem "github.com/wyfcoding/shopping/internal/catalog/infrastructure/persistence/memory"
	catalogmysql "github.com/wyfcoding/shopping/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/shopping/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/shopping/internal/order/application"
	orderdomain "github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/internal/order/infrastructure/messaging"
	ordermem "github.com/wyfcoding/shopping/internal/order/infrastructure/persistence/memory"
	ordermysql "github.com/wyfcoding/shopping/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/shopping/internal/order/interfaces/http"

	"github.com/wyfcoding/shopping/pkg/cache"
	"github.com/wyfcoding/shopping/pkg/config"
	"github.com/wyfcoding/shopping/pkg/db"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
	"github.com/wyfcoding/shopping/pkg/middleware"
	"github.com/wyfcoding/shopping/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/storefront/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "starting storefront service",
		"service", cfg.ServiceName, "version", cfg.Version, "environment", cfg.Environment)

	// Repositories. Everything runs in-memory unless MySQL/Redis are
	// enabled in the config.
	var (
		productRepo catalogdomain.ProductRepository
		cartRepo    cartdomain.CartRepository
		orderRepo   orderdomain.OrderRepository
	)

	if cfg.Database.Enabled {
		database, err := db.Init(db.Config{
			Driver:             cfg.Database.Driver,
			DSN:                cfg.Database.DSN,
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
			LogEnabled:         cfg.Database.LogEnabled,
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to connect to database", "error", err)
		}
		defer database.Close()

		if err := database.AutoMigrate(
			&catalogdomain.Product{},
			&ordermysql.OrderModel{},
			&ordermysql.OrderItemModel{},
		); err != nil {
			logger.Fatal(ctx, "failed to migrate schema", "error", err)
		}

		productRepo = catalogmysql.NewProductRepository(database.DB)
		orderRepo = ordermysql.NewOrderRepository(database.DB)
	} else {
		productRepo = catalogmem.NewProductRepository(catalogmem.SampleProducts())
		orderRepo = ordermem.NewOrderRepository()
	}

	if cfg.Redis.Enabled {
		redisCache, err := cache.New(cache.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxPoolSize:  cfg.Redis.MaxPoolSize,
			ConnTimeout:  cfg.Redis.ConnTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to connect to redis", "error", err)
		}
		defer redisCache.Close()

		cartRepo = cartredis.NewCartRepository(redisCache.Client(), time.Duration(cfg.Redis.CartTTL)*time.Second)
	} else {
		cartRepo = cartmem.NewCartRepository()
	}

	var publisher orderdomain.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			GroupID:      cfg.Kafka.GroupID,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to create kafka producer", "error", err)
		}
		defer producer.Close()

		publisher = messaging.NewKafkaPublisher(producer)
	} else {
		publisher = messaging.NewMemoryPublisher()
	}

	pricing := cartdomain.Pricing{
		TaxRate:               decimal.NewFromFloat(cfg.Cart.TaxRate),
		FreeShippingThreshold: decimal.NewFromFloat(cfg.Cart.FreeShippingThreshold),
		ShippingCost:          decimal.NewFromFloat(cfg.Cart.ShippingCost),
	}

	catalogService := catalogapp.NewCatalogApplicationService(productRepo)
	cartService := cartapp.NewCartApplicationService(cartRepo, pricing)
	orderService := orderapp.NewOrderApplicationService(orderRepo, cartService, publisher, cfg.Kafka.OrderTopic)

	m := metrics.New(cfg.ServiceName)
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		m.Register(registry)
		metricsServer = metrics.StartHTTPServer(registry, cfg.Metrics.Port, cfg.Metrics.Path)
		logger.Info(ctx, "metrics server listening", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	}

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinMetricsMiddleware(m),
		middleware.GinCORSMiddleware(),
	)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName, "version": cfg.Version})
	})

	root := engine.Group("")
	cataloghttp.NewCatalogHandler(catalogService).RegisterRoutes(root)
	carthttp.NewCartHandler(cartService, catalogService).RegisterRoutes(root)
	orderhttp.NewOrderHandler(orderService).RegisterRoutes(root)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down storefront service")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "http server shutdown failed", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "metrics server shutdown failed", "error", err)
		}
	}
	logger.Info(ctx, "storefront service stopped")
}
