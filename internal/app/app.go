package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/riskibarqy/worldcup-insights/internal/config"
	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/validation"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	repocache "github.com/riskibarqy/worldcup-insights/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/worldcup-insights/internal/infrastructure/repository/filesystem"
	"github.com/riskibarqy/worldcup-insights/internal/interfaces/httpapi"
	"github.com/riskibarqy/worldcup-insights/internal/pipeline"
	"github.com/riskibarqy/worldcup-insights/internal/platform/cache"
	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
	"github.com/riskibarqy/worldcup-insights/internal/platform/metrics"
	"github.com/riskibarqy/worldcup-insights/internal/usecase"
)

// API bundles the HTTP server with the catalog it serves.
type API struct {
	Server  *http.Server
	Catalog *usecase.CatalogService
	Metrics *metrics.Metrics

	logger *logging.Logger
}

// NewMetrics builds the service metrics on a private registry that also
// carries the Go runtime and process collectors. It returns nil when metrics
// are disabled.
func NewMetrics(cfg config.Config) *metrics.Metrics {
	if !cfg.MetricsEnabled {
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(reg)
}

// NewDatasetRepository opens the datasets directory, memoized when caching is
// enabled.
func NewDatasetRepository(cfg config.Config, m *metrics.Metrics) worldcup.Repository {
	var repo worldcup.Repository = filesystem.NewDatasetRepository(cfg.DatasetsDir)
	if !cfg.CacheEnabled {
		return repo
	}

	store := cache.NewStore(cfg.CacheTTL)
	m.ObserveCache("datasets", store)
	return repocache.NewDatasetRepository(repo, store)
}

func NewAPI(cfg config.Config, logger *logging.Logger) (*API, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	m := NewMetrics(cfg)
	repo := NewDatasetRepository(cfg, m)

	catalogStore := cache.NewStore(0)
	analyticsStore := cache.NewStore(cfg.CacheTTL)
	m.ObserveCache("catalog", catalogStore)
	m.ObserveCache("analytics", analyticsStore)

	catalogSvc := usecase.NewCatalogService(
		repo,
		team.DefaultResolver(),
		catalogStore,
		usecase.CatalogConfig{
			Competition: cfg.CompetitionName,
			Years:       cfg.CatalogYears,
		},
		logger.Named("catalog"),
		m,
	)
	analyticsSvc := usecase.NewAnalyticsService(catalogSvc, analyticsStore)

	handler := httpapi.NewHandler(catalogSvc, analyticsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, m)

	return &API{
		Server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		Catalog: catalogSvc,
		Metrics: m,
		logger:  logger,
	}, nil
}

// WarmUp loads the catalog. The server answers 503 on data routes until it
// succeeds.
func (a *API) WarmUp(ctx context.Context) error {
	start := time.Now()
	catalog, err := a.Catalog.Load(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "catalog warm up failed", "error", err)
		return err
	}
	a.logger.InfoContext(ctx, "catalog warm up finished",
		"years", catalog.Years,
		"took_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// NewPipeline wires the conversion pipeline to the datasets directory.
func NewPipeline(cfg config.Config, logger *logging.Logger, m *metrics.Metrics) *pipeline.Service {
	if logger == nil {
		logger = logging.Default()
	}
	resolver := team.DefaultResolver()
	converter := pipeline.NewConverter(resolver, validation.New(resolver))

	var observer pipeline.Observer
	if m != nil {
		observer = m
	}
	return pipeline.NewService(
		filesystem.NewDatasetRepository(cfg.DatasetsDir),
		converter,
		logger.Named("pipeline"),
		observer,
	)
}
