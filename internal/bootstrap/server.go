package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/persistence"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/handlers"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/middleware"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RunServer hosts the command API: product catalog writes and order
// placement, both of which append to the outbox inside their own
// transactions. Publication happens in the separate publisher process.
func RunServer(ctx context.Context, cfg config.Config) error {
	start := time.Now()
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	conn, err := persistence.New(ctx, persistence.Config{
		WriteDSN:          cfg.Database.WriteDSN,
		ReadDSN:           cfg.Database.ReadDSN,
		MaxConns:          cfg.Database.MaxConns,
		MinConns:          cfg.Database.MinConns,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
	})
	if err != nil {
		return err
	}
	log.Infof("bootstrap: db init in %s", time.Since(start))
	defer conn.Close()

	pingCtx := ctx
	if cfg.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()
	}
	if err := conn.Ping(pingCtx); err != nil {
		return err
	}
	log.Infof("bootstrap: db ping in %s", time.Since(start))

	productRepo := persistence.NewProductRepository(conn)
	orderRepo := persistence.NewOrderRepository(conn)
	productUC := usecase.NewProduct(productRepo, log)
	orderUC := usecase.NewOrder(orderRepo, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())
	handler := handlers.NewCommandHandler(productUC, orderUC)
	routerBuilder := handlers.NewCommandRouter(handler)
	routerBuilder.RegisterRoutes(router, middleware.Idempotency())

	return serve(ctx, cfg.Server, router, log)
}

func serve(ctx context.Context, cfg config.Server, handler http.Handler, log *logrus.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("bootstrap: server listening on %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown error: %v", err)
	}

	return nil
}
