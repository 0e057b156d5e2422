package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lebokota/storefront/internal/catalog"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	"github.com/lebokota/storefront/internal/config"
	"github.com/lebokota/storefront/internal/observability"
	obslogger "github.com/lebokota/storefront/internal/observability/logger"
	obsmetrics "github.com/lebokota/storefront/internal/observability/metrics"
	"github.com/lebokota/storefront/internal/order"
	orderdomain "github.com/lebokota/storefront/internal/order/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	catalog.Module,
	order.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	catalogSvc catalogdomain.Service
	orderSvc   orderdomain.Service
}

type ServerParams struct {
	fx.In

	Engine     *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	CatalogSvc catalogdomain.Service
	OrderSvc   orderdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Engine,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		catalogSvc: p.CatalogSvc,
		orderSvc:   p.OrderSvc,
	}
}

func registerRoutes(s *Server) {
	api := s.engine.Group("/api/v1")

	products := api.Group("/products")
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProductByID)
	products.GET("/category/:category", s.ListProductsByCategory)
	products.POST("", s.CreateProduct)

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("/:id", s.GetOrderByID)
	orders.GET("/reference/:reference", s.GetOrderByReference)
	orders.PATCH("/:id/status", s.UpdateOrderStatus)
	orders.PATCH("/:id/payment-status", s.UpdateOrderPaymentStatus)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
