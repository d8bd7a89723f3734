package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/cryoflow/internal/config"
	"github.com/vk/cryoflow/internal/ctxlog"
	"github.com/vk/cryoflow/internal/engine"
	"github.com/vk/cryoflow/internal/pipeline"
	"github.com/vk/cryoflow/internal/sampling"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	loader    config.Loader
	submitter engine.Submitter
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. When submitter is
// nil the app falls back to writing a submission plan to outW.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, submitter engine.Submitter) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if submitter == nil {
		submitter = engine.NewPlanWriter(outW)
	}

	return &App{
		outW:      outW,
		logger:    logger,
		loader:    loader,
		submitter: submitter,
	}
}

// Run executes the main application logic: load the run spec, construct the
// workflow graph, and hand it to the submitter.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	spec, err := a.loader.Load(ctx, appConfig.RunPath)
	if err != nil {
		return fmt.Errorf("failed to load run spec: %w", err)
	}
	a.logger.Debug("Run spec loaded.", "path", appConfig.RunPath)

	mode := pipeline.Mode(appConfig.Mode)
	a.logger.Debug("Building workflow graph...")
	graph, err := pipeline.Build(ctx, spec, pipeline.Options{
		Mode:    mode,
		BaseDir: appConfig.BaseDir,
		Sample:  sampling.Strategy{Count: appConfig.SampleCount, Seed: appConfig.SampleSeed},
	})
	if err != nil {
		return fmt.Errorf("failed to build workflow graph: %w", err)
	}
	a.logger.Info("Workflow graph built.",
		"node_count", len(graph.Nodes), "edge_count", len(graph.Edges), "cluster_count", len(graph.Clusters))

	opts := engine.Options{
		MaxJobs:    mode.MaxJobs(),
		Site:       appConfig.Site,
		OutputSite: appConfig.OutputSite,
	}
	if err := a.submitter.Submit(ctx, graph, opts); err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
