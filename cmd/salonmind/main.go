// Command salonmind runs the spa/salon analysis backend. By default it stays
// resident and fires the daily-analysis and churn-prevention workflows on
// their configured cron schedules; with -workflow or -analysis it runs once
// and exits.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/salonmind/salonmind"
	"github.com/salonmind/salonmind/config"
	"github.com/salonmind/salonmind/coordinator"
	"github.com/salonmind/salonmind/logging"
)

const workflowTimeout = 5 * time.Minute

func main() {
	workflow := flag.String("workflow", "", "run a single workflow and exit (daily_analysis or churn_prevention)")
	analysis := flag.String("analysis", "", "run a single analysis and exit (utilization, gaps, churn or segments)")

	cfg := config.MustNew[config.Config](config.Prefix)

	level := logging.LogLevelInfo
	if cfg.Debug {
		level = logging.LogLevelDebug
	}
	logger := logging.NewSlogLogger(level, "json")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := salonmind.New(ctx, *cfg, func(o *salonmind.Options) {
		o.Logger = logger
	})
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if *workflow != "" {
		if err := runOnce(ctx, app, *workflow); err != nil {
			logger.Error("workflow run failed", "workflow", *workflow, "error", err)
			os.Exit(1)
		}
		return
	}
	if *analysis != "" {
		if err := runAnalysisOnce(ctx, app, *analysis); err != nil {
			logger.Error("analysis run failed", "analysis", *analysis, "error", err)
			os.Exit(1)
		}
		return
	}

	runScheduled := func(name string) func() {
		return func() {
			runCtx, cancel := context.WithTimeout(ctx, workflowTimeout)
			defer cancel()

			result, err := app.RunWorkflow(runCtx, name)
			if err != nil {
				logger.Error("scheduled workflow failed", "workflow", name, "error", err)
				return
			}
			logger.Info("scheduled workflow completed", "workflow", name, "run_id", result.RunID)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.DailyAnalysisSchedule, runScheduled(coordinator.WorkflowDailyAnalysis)); err != nil {
		logger.Error("invalid daily analysis schedule", "schedule", cfg.DailyAnalysisSchedule, "error", err)
		os.Exit(1)
	}
	if _, err := c.AddFunc(cfg.ChurnPreventionSchedule, runScheduled(coordinator.WorkflowChurnPrevention)); err != nil {
		logger.Error("invalid churn prevention schedule", "schedule", cfg.ChurnPreventionSchedule, "error", err)
		os.Exit(1)
	}

	c.Start()
	logger.Info("scheduler started",
		"daily_analysis", cfg.DailyAnalysisSchedule,
		"churn_prevention", cfg.ChurnPreventionSchedule)

	<-ctx.Done()
	logger.Info("shutting down")

	// Let an in-flight workflow finish before exiting.
	<-c.Stop().Done()
}

func runOnce(ctx context.Context, app *salonmind.App, name string) error {
	runCtx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	result, err := app.RunWorkflow(runCtx, name)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runAnalysisOnce(ctx context.Context, app *salonmind.App, kind string) error {
	runCtx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	result, err := app.RunAnalysis(runCtx, kind)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
