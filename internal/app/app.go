// Package app wires configuration, the Odoo client, glossary enrichment and
// the MCP gateway into a running process.
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"odx/internal/domain"
	"odx/internal/infra/gateway"
	"odx/internal/infra/glossary"
	"odx/internal/infra/odoo"
	"odx/internal/infra/telemetry"
)

type App struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger.Named("app")}
}

// ServeConfig carries command-line inputs into Serve.
type ServeConfig struct {
	ConfigPath string
}

// Serve runs the adapter: load config, construct the remote client, enrich
// the catalog, publish resources, then serve MCP over stdio. With DryRun set
// the serve loop is skipped after a fully verified startup.
func (a *App) Serve(ctx context.Context, serveCfg ServeConfig) error {
	cfg, err := LoadConfig(serveCfg.ConfigPath)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)

	client, err := odoo.NewClient(odoo.Config{
		InstanceURL: cfg.InstanceURL,
		GatewayURL:  cfg.GatewayURL,
		Database:    cfg.Database,
		APIKey:      cfg.APIKey,
		UserID:      cfg.UserID,
	}, nil, metrics, a.logger)
	if err != nil {
		return err
	}

	catalog, err := glossary.NewLoader(a.logger).Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	enricher := glossary.NewEnricher(glossary.Options{
		Client:      client,
		Logger:      a.logger,
		Metrics:     metrics,
		Concurrency: cfg.EnrichmentConcurrency,
	})
	enriched := enricher.Enrich(ctx, catalog)

	server := gateway.New(gateway.Options{
		Client: client,
		Conn: gateway.ConnectionInfo{
			InstanceURL: cfg.InstanceURL,
			GatewayURL:  cfg.GatewayURL,
			Database:    cfg.Database,
			UserID:      cfg.UserID,
			APIKeySet:   cfg.APIKey != "",
		},
		Logger:  a.logger,
		Metrics: metrics,
	})
	if err := server.Publish(enriched); err != nil {
		return err
	}

	if cfg.DryRun {
		a.logger.Info("dry run requested, skipping serve loop",
			zap.Int("entries", len(enriched)),
		)
		return nil
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := telemetry.StartHTTPServer(ctx, cfg.MetricsAddr, registry, a.logger); err != nil {
				a.logger.Error("metrics server exited", zap.Error(err))
			}
		}()
	}

	return server.Run(ctx)
}

// Validate loads the configuration and catalog without touching the remote
// instance and returns a startup summary.
func (a *App) Validate(serveCfg ServeConfig) (ValidationSummary, error) {
	cfg, err := LoadConfig(serveCfg.ConfigPath)
	if err != nil {
		return ValidationSummary{}, err
	}

	connCfg := odoo.Config{
		InstanceURL: cfg.InstanceURL,
		GatewayURL:  cfg.GatewayURL,
		Database:    cfg.Database,
		APIKey:      cfg.APIKey,
		UserID:      cfg.UserID,
	}
	if err := connCfg.Validate(); err != nil {
		return ValidationSummary{}, err
	}

	catalog, err := glossary.NewLoader(a.logger).Load(cfg.CatalogPath)
	if err != nil {
		return ValidationSummary{}, err
	}

	summary := ValidationSummary{
		Database: cfg.Database,
		Entries:  len(catalog),
	}
	for _, entry := range catalog {
		if entry.FieldsSource == domain.FieldsDynamic {
			summary.DynamicEntries++
		}
	}
	return summary, nil
}

// ValidationSummary is the result of a validate run.
type ValidationSummary struct {
	Database       string
	Entries        int
	DynamicEntries int
}
