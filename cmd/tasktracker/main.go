package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/ent0n29/tasktracker/internal/config"
	"github.com/ent0n29/tasktracker/internal/logger"
	"github.com/ent0n29/tasktracker/internal/observability"
	"github.com/ent0n29/tasktracker/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	lg := logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		lg.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(cfg.MetricsNamespace, reg)
	manager, err := tasks.NewManager(
		tasks.WithMetrics(metrics),
		tasks.WithSyncDelay(cfg.SyncDelay),
	)
	if err != nil {
		return fmt.Errorf("task store init: %w", err)
	}

	first, err := manager.CreateTask("Finish portfolio website", "Update UI animations")
	if err != nil {
		return err
	}
	if _, err := manager.CreateTask("Review PR #42", "Check comments on the API changes"); err != nil {
		return err
	}
	if _, err := manager.UpdateStatus(first.ID, tasks.TaskStatusInProgress); err != nil {
		return err
	}

	if cfg.StatusFilter != "" {
		fmt.Fprintf(out, "Current tasks (%s):\n", cfg.StatusFilter)
	} else {
		fmt.Fprintln(out, "Current tasks:")
	}
	if err := writeTable(out, manager.GetTasks(cfg.StatusFilter)); err != nil {
		return err
	}

	res, err := manager.SyncToDatabase().Wait(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	fmt.Fprintf(out, "%d tasks synced\n", res.Count)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	fmt.Fprintln(out, "\nMetrics:")
	return writeMetrics(out, reg)
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(out io.Writer, list []tasks.Task) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION\tSTATUS\tCREATED\tUPDATED")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Title,
			t.Description,
			t.Status,
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
		)
	}
	return tw.Flush()
}
