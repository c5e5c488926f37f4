package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	natsgo "github.com/nats-io/nats.go"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	adaptermongo "github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/mongo"
	adapternats "github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/nats"
	adapterredis "github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/redis"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/adapter/email"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/config"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/handler"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/metrics"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/router"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
	goredis "github.com/redis/go-redis/v9"
)

// App owns every long-lived resource and the HTTP server.
type App struct {
	cfg    *config.Config
	log    logger.Logger
	mongo  *mongodriver.Client
	redis  *goredis.Client
	nats   *natsgo.Conn
	server *http.Server
}

func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	mongoClient, err := adaptermongo.NewClient(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient, err := adapterredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	// NATS is optional infrastructure: audit events are best-effort, so
	// a missing broker degrades to log-only instead of failing startup.
	var natsConn *natsgo.Conn
	var audit adapternats.AuditPublisher
	natsConn, err = adapternats.NewConnection(cfg.NATS)
	if err != nil {
		log.Warnf("nats unavailable, audit events disabled: %v", err)
	} else {
		audit, err = adapternats.NewAuditPublisher(natsConn)
		if err != nil {
			return nil, fmt.Errorf("nats publisher: %w", err)
		}
	}

	tokenStore := adapterredis.NewTokenStore(redisClient)
	mailer := email.NewSMTPSender(cfg.SMTP, log)

	categoryRepo := adaptermongo.NewCategoryRepository(db, log)
	courierRepo := adaptermongo.NewCourierRepository(db, log)
	vendorRepo := adaptermongo.NewVendorRepository(db, log)
	bankOrderRepo := adaptermongo.NewBankOrderRepository(db, log)
	purchaseOrderRepo := adaptermongo.NewPurchaseOrderRepository(db, log)
	challanRepo := adaptermongo.NewChallanRepository(db, log)
	userRepo := adaptermongo.NewUserRepository(db, log)

	categorySvc := service.NewCategoryService(categoryRepo, audit, log)
	courierSvc := service.NewCourierService(courierRepo, audit, log)
	vendorSvc := service.NewVendorService(vendorRepo, audit, log)
	bankOrderSvc := service.NewBankOrderService(bankOrderRepo, categoryRepo, audit, log)
	purchaseOrderSvc := service.NewPurchaseOrderService(purchaseOrderRepo, vendorRepo, audit, log)
	challanSvc := service.NewChallanService(challanRepo, bankOrderRepo, courierRepo, audit, log)
	userSvc := service.NewUserService(userRepo, tokenStore, audit, log)
	authSvc := service.NewAuthService(userRepo, tokenStore, mailer, audit, cfg.Auth, log)

	m := metrics.NewManager("bnw_orders")

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, userSvc, log),
		User:          handler.NewUserHandler(userSvc, log),
		Category:      handler.NewCategoryHandler(categorySvc, log),
		Courier:       handler.NewCourierHandler(courierSvc, log),
		Vendor:        handler.NewVendorHandler(vendorSvc, log),
		BankOrder:     handler.NewBankOrderHandler(bankOrderSvc, log),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderSvc, log),
		Challan:       handler.NewChallanHandler(challanSvc, log),
	}

	mux := router.New(handlers, cfg.Auth.JWTSecret, m, log)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		log:    log,
		mongo:  mongoClient,
		redis:  redisClient,
		nats:   natsConn,
		server: server,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully
// within the configured deadline.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		a.log.Infof("received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Errorf("HTTP server shutdown: %v", err)
	}
	a.close(ctx)
	a.log.Info("shutdown complete")
	return nil
}

func (a *App) close(ctx context.Context) {
	if a.nats != nil {
		a.nats.Close()
	}
	if err := a.redis.Close(); err != nil {
		a.log.Errorf("redis close: %v", err)
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.log.Errorf("mongo disconnect: %v", err)
	}
}
