package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"github.com/LavaJover/printshop-order-service/internal/domain"
	publisher "github.com/LavaJover/printshop-order-service/internal/infrastructure/kafka"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/memory"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/metrics"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/migrate"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.PrintshopConfig
	Logger       *zap.Logger
	DB           *gorm.DB
	Registry     *prometheus.Registry
	Metrics      *metrics.PrintshopMetrics
	Repositories *Repositories
	Blobs        domain.BlobStore
	Publisher    domain.EventPublisher
	// Subscriber is nil when kafka is disabled.
	Subscriber domain.SubscriberPort

	closers []func() error
}

type Repositories struct {
	CatalogRepo domain.CatalogRepository
	ShopRepo    domain.ShopRepository
	OrderRepo   domain.OrderRepository
	FileRepo    domain.OrderFileRepository
	ClientRepo  domain.ClientRepository
	RewardRepo  domain.RewardRepository
	Tx          domain.TxManager
}

func InitializeDependencies(ctx context.Context, cfg *config.PrintshopConfig, log *zap.Logger) (*Dependencies, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := &Dependencies{
		Config:   cfg,
		Logger:   log,
		Registry: reg,
		Metrics:  metrics.NewPrintshopMetrics(reg),
	}

	if err := deps.initStore(ctx); err != nil {
		_ = deps.Close()
		return nil, err
	}
	if err := deps.initBlobs(ctx); err != nil {
		_ = deps.Close()
		return nil, err
	}
	deps.initEvents()

	return deps, nil
}

func (d *Dependencies) initStore(ctx context.Context) error {
	switch d.Config.OrderDB.Driver {
	case "memory":
		d.Logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		d.Repositories = &Repositories{
			CatalogRepo: store,
			ShopRepo:    store,
			OrderRepo:   store,
			FileRepo:    store,
			ClientRepo:  store,
			RewardRepo:  store,
			Tx:          store,
		}
		return nil
	case "postgres":
		db, err := postgres.Open(ctx, d.Config.OrderDB)
		if err != nil {
			return fmt.Errorf("order db: %w", err)
		}
		d.DB = db
		d.closers = append(d.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		if path := d.Config.OrderDB.MigrationsPath; path != "" {
			if err := migrate.RunMigrations(db, path, d.Logger); err != nil {
				return fmt.Errorf("order db migrations: %w", err)
			}
		}
		d.Repositories = &Repositories{
			CatalogRepo: repository.NewDefaultCatalogRepository(db),
			ShopRepo:    repository.NewDefaultShopRepository(db),
			OrderRepo:   repository.NewDefaultOrderRepository(db),
			FileRepo:    repository.NewDefaultOrderFileRepository(db),
			ClientRepo:  repository.NewDefaultClientRepository(db),
			RewardRepo:  repository.NewDefaultRewardRepository(db),
			Tx:          postgres.NewTxManager(db),
		}
		return nil
	}
	return fmt.Errorf("unknown order_db.driver %q", d.Config.OrderDB.Driver)
}

func (d *Dependencies) initBlobs(ctx context.Context) error {
	switch d.Config.BlobStore.Driver {
	case "memory":
		d.Blobs = storage.NewMemoryBlobStore()
		return nil
	case "gcs":
		store, err := storage.NewGCSBlobStore(ctx, d.Config.BlobStore.Bucket)
		if err != nil {
			return fmt.Errorf("blob store: %w", err)
		}
		d.Blobs = store
		d.closers = append(d.closers, store.Close)
		return nil
	}
	return fmt.Errorf("unknown blob_store.driver %q", d.Config.BlobStore.Driver)
}

func (d *Dependencies) initEvents() {
	kcfg := d.Config.KafkaService
	if !kcfg.Enabled {
		d.Publisher = publisher.NopEventPublisher{}
		return
	}
	brokers := kcfg.Brokers()
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	d.closers = append(d.closers, pub.Close)
	d.Publisher = publisher.NewKafkaEventPublisher(pub, kcfg.LedgerTopic, kcfg.MaintenanceTopic)
	d.Subscriber = publisher.NewDefaultKafkaSubscriber(brokers)
}

// Ping reports whether the order store answers. The memory store always does.
func (d *Dependencies) Ping(ctx context.Context) error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
