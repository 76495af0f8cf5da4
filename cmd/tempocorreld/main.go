package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/leowmjw/tempocorrelate/pkg/config"
	"github.com/leowmjw/tempocorrelate/pkg/httpapi"
	"github.com/leowmjw/tempocorrelate/pkg/jobstore"
	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; flags below override its values")
	httpAddr := flag.String("http-addr", "", "HTTP server address")
	temporalAddr := flag.String("temporal-addr", "", "Temporal server address")
	namespace := flag.String("namespace", "", "Temporal namespace")
	taskQueue := flag.String("task-queue", "", "Temporal task queue")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	settings := &config.Settings{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		settings = loaded
	}
	applyOverrides(settings, *httpAddr, *temporalAddr, *namespace, *taskQueue, *logLevel)
	if err := settings.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(settings.LogLevel)}))
	slog.SetDefault(logger)

	logger.Info("starting tempocorreld",
		"http_addr", settings.HTTPAddr,
		"temporal_addr", settings.TemporalAddr,
		"namespace", settings.Namespace,
		"task_queue", settings.TaskQueue,
	)

	temporalClient, err := client.Dial(client.Options{
		HostPort:  settings.TemporalAddr,
		Namespace: settings.Namespace,
	})
	if err != nil {
		logger.Error("failed to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer temporalClient.Close()

	jobs, err := jobstore.Open(settings.JobStore.Path)
	if err != nil {
		logger.Error("failed to open job store", "error", err)
		os.Exit(1)
	}
	defer jobs.Close()

	events := temporal.NewMockEventStore()
	activities := temporal.NewActivitiesImpl(logger, events, jobs)

	w := worker.New(temporalClient, settings.TaskQueue, worker.Options{})
	w.RegisterWorkflow(temporal.CorrelationWorkflow)
	w.RegisterWorkflow(temporal.StreamingCorrelationWorkflow)
	w.RegisterActivityWithOptions(activities.LoadEventsActivity, activity.RegisterOptions{Name: temporal.LoadEventsActivityName})
	w.RegisterActivityWithOptions(activities.AppendAnchorEventsActivity, activity.RegisterOptions{Name: temporal.AppendAnchorEventsActivityName})
	w.RegisterActivityWithOptions(activities.AppendCandidateEventsActivity, activity.RegisterOptions{Name: temporal.AppendCandidateEventsActivityName})
	w.RegisterActivityWithOptions(activities.RunCorrelationActivity, activity.RegisterOptions{Name: temporal.RunCorrelationActivityName})
	w.RegisterActivityWithOptions(activities.RecordJobRunActivity, activity.RegisterOptions{Name: temporal.RecordJobRunActivityName})

	go func() {
		logger.Info("starting Temporal worker", "task_queue", settings.TaskQueue)
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Error("Temporal worker failed", "error", err)
			os.Exit(1)
		}
	}()

	server := httpapi.NewServer(logger, temporalClient, jobs, settings.HTTPAddr, settings.TaskQueue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Start(ctx); err != nil {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("received shutdown signal, stopping services")
	cancel()
	logger.Info("tempocorreld stopped")
}

func applyOverrides(settings *config.Settings, httpAddr, temporalAddr, namespace, taskQueue, logLevel string) {
	if httpAddr != "" {
		settings.HTTPAddr = httpAddr
	}
	if temporalAddr != "" {
		settings.TemporalAddr = temporalAddr
	}
	if namespace != "" {
		settings.Namespace = namespace
	}
	if taskQueue != "" {
		settings.TaskQueue = taskQueue
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
