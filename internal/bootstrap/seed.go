package bootstrap

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/domain/entity"
	"github.com/Umeshh27/Event-Driven-Analytics/internal/infra/persistence"
	"github.com/go-faker/faker/v4"
)

var seedCategories = []string{"tools", "electronics", "books", "toys", "garden"}

// Seed inserts sample catalog products. It writes products only, not outbox
// rows, so seeded data does not flow into the projections.
func Seed(ctx context.Context, cfg config.Config, count, batchSize int) error {
	if count <= 0 {
		count = 10
	}
	if batchSize <= 0 {
		batchSize = 100
	}

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

	baseTime := time.Now().UTC()
	products := make([]entity.Product, 0, batchSize)
	for i := 0; i < count; i++ {
		product := entity.Product{
			Name:      fmt.Sprintf("%s %s", faker.Word(), faker.Word()),
			Category:  seedCategories[rand.Intn(len(seedCategories))],
			Price:     float64(rand.Intn(9900)+100) / 100,
			Stock:     rand.Intn(500),
			CreatedAt: baseTime.Add(time.Duration(i) * time.Microsecond),
		}
		products = append(products, product)
		if len(products) == batchSize {
			if err := conn.Write(ctx).CreateInBatches(&products, batchSize).Error; err != nil {
				return err
			}
			products = products[:0]
		}
	}
	if len(products) > 0 {
		if err := conn.Write(ctx).CreateInBatches(&products, batchSize).Error; err != nil {
			return err
		}
	}

	log.Infof("bootstrap: seeded %d products", count)
	return nil
}
