package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// CatalogStatus is satisfied by the catalog service.
type CatalogStatus interface {
	Loaded() bool
}

var ErrCatalogNotLoaded = errors.New("product catalog has not been loaded")

func NewHealthHandler(cfg *config.Config, catalog CatalogStatus) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "catalog",
			Timeout:   time.Second,
			SkipOnErr: true,
			Check: func(context.Context) error {
				if !catalog.Loaded() {
					return ErrCatalogNotLoaded
				}
				return nil
			},
		},
	}

	if cfg.Storage.Driver == config.StorageDriverRedis {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
