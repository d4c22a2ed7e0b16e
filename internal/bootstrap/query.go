package bootstrap

import (
	"context"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/persistence"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/handlers"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/transport/http/middleware"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/usecase"
	"github.com/gin-gonic/gin"
)

// RunQuery hosts the analytics read API over the projection tables. Reads go
// through the replica DSN when one is configured.
func RunQuery(ctx context.Context, cfg config.Config) error {
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

	projectionRepo := persistence.NewProjectionRepository(conn)
	analyticsUC := usecase.NewAnalytics(projectionRepo, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())
	handler := handlers.NewAnalyticsHandler(analyticsUC)
	routerBuilder := handlers.NewAnalyticsRouter(handler)
	routerBuilder.RegisterRoutes(router)

	return serve(ctx, cfg.Query, router, log)
}
