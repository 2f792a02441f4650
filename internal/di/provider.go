package di

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goPreauthLedger/internal/config"
	"github.com/LeJamon/goPreauthLedger/internal/core/invariant"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/state"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	_ "github.com/LeJamon/goPreauthLedger/internal/core/tx/all"
	"github.com/LeJamon/goPreauthLedger/internal/metrics"
	"github.com/LeJamon/goPreauthLedger/internal/storage/backend"
	"github.com/LeJamon/goPreauthLedger/internal/storage/compression"
	"github.com/LeJamon/goPreauthLedger/internal/storage/database"
	"github.com/LeJamon/goPreauthLedger/internal/storage/journal"
)

// Service names constants for type-safe access.
const (
	ServiceConfig  = "config"
	ServiceStorage = "storage"
	ServiceStore   = "store"
	ServiceMetrics = "metrics"
	ServiceJournal = "journal"
	ServiceEngine  = "tx.engine"
)

// ledgerDBName is the database holding ledger entries under the storage root.
const ledgerDBName = "ledger"

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
	log       logrus.FieldLogger
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config, logger logrus.FieldLogger) *Provider {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Provider{
		container: container,
		config:    cfg,
		log:       logger,
	}
}

// RegisterAll registers all services. ctx bounds the connections opened
// while building them.
func (p *Provider) RegisterAll(ctx context.Context) {
	p.container.Register(ServiceConfig, p.config)

	p.registerStorageBuilders(ctx)
	p.registerEngineBuilders()
}

func (p *Provider) registerStorageBuilders(ctx context.Context) {
	p.container.RegisterBuilder(ServiceStorage, func(c *Container) (interface{}, error) {
		cfg := p.config.Storage
		p.log.WithFields(logrus.Fields{
			"backend": cfg.Backend,
			"path":    cfg.Path,
		}).Info("opening storage")
		return backend.Open(cfg.Backend, cfg.Path)
	})

	p.container.RegisterBuilder(ServiceStore, func(c *Container) (interface{}, error) {
		manager, err := c.Get(ServiceStorage)
		if err != nil {
			return nil, err
		}
		db, err := manager.(database.Manager).OpenDB(ledgerDBName)
		if err != nil {
			return nil, err
		}
		compressor, err := compression.Get(p.config.Storage.Compression)
		if err != nil {
			return nil, err
		}
		return state.New(db, state.Options{
			Compressor: compressor,
			CacheSize:  p.config.Storage.CacheSize,
			Logger:     p.log.WithField("component", "store"),
		})
	})

	p.container.RegisterBuilder(ServiceJournal, func(c *Container) (interface{}, error) {
		if !p.config.JournalEnabled() {
			return nil, nil
		}
		j, err := journal.Open(ctx, p.config.JournalOptions(), p.log.WithField("component", "journal"))
		if err != nil {
			return nil, err
		}
		return j, nil
	})
}

func (p *Provider) registerEngineBuilders() {
	p.container.RegisterBuilder(ServiceMetrics, func(c *Container) (interface{}, error) {
		store, err := p.Store()
		if err != nil {
			return nil, err
		}
		m := metrics.NewService()
		m.RegisterCacheStats(store.CacheStats)
		return m, nil
	})

	p.container.RegisterBuilder(ServiceEngine, func(c *Container) (interface{}, error) {
		store, err := p.Store()
		if err != nil {
			return nil, err
		}
		m, err := p.Metrics()
		if err != nil {
			return nil, err
		}
		observers := []tx.Observer{m}

		j, err := p.Journal()
		if err != nil {
			return nil, err
		}
		if j != nil {
			observers = append(observers, j)
		}

		return tx.NewEngine(store, p.config.TxConfig(),
			tx.WithLogger(p.log.WithField("component", "engine")),
			tx.WithInvariants(invariant.Default()...),
			tx.WithObservers(observers...),
		), nil
	})
}

// Store returns the ledger entry store.
func (p *Provider) Store() (*state.Store, error) {
	svc, err := p.container.Get(ServiceStore)
	if err != nil {
		return nil, err
	}
	return svc.(*state.Store), nil
}

// Metrics returns the metrics service.
func (p *Provider) Metrics() (*metrics.Service, error) {
	svc, err := p.container.Get(ServiceMetrics)
	if err != nil {
		return nil, err
	}
	return svc.(*metrics.Service), nil
}

// Journal returns the operation journal, or nil when journaling is disabled.
func (p *Provider) Journal() (*journal.Journal, error) {
	svc, err := p.container.Get(ServiceJournal)
	if err != nil || svc == nil {
		return nil, err
	}
	return svc.(*journal.Journal), nil
}

// Engine returns the operation engine.
func (p *Provider) Engine() (*tx.Engine, error) {
	svc, err := p.container.Get(ServiceEngine)
	if err != nil {
		return nil, err
	}
	return svc.(*tx.Engine), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
