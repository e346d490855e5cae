package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/logging"
	"github.com/2beens/fitlog/internal/storage"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/tracker"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [dev | development | prod | production]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fitlog [-env dev] [-config ./config.toml] <command> [flags]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "commands: %s\n\n", commandNames())
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(exitUsage)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})

	log.Debugf("running in [%s] environment", *env)
	log.Debugf("using data dir: [%s]", cfg.DataDir)

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("fitlog", "cli", promRegistry)

	profileRepo := storage.NewProfileRepo(cfg.ProfilePath(), metricsManager)
	exerciseNamesRepo := storage.NewExerciseNamesRepo(cfg.ExercisesPath(), metricsManager)
	workoutsRepo := storage.NewWorkoutsRepo(cfg.WorkoutsPath(), metricsManager)

	a := &app{
		tracker: tracker.NewTracker(profileRepo, exerciseNamesRepo, workoutsRepo, metricsManager),
		dataFiles: []string{
			profileRepo.Path(),
			exerciseNamesRepo.Path(),
			workoutsRepo.Path(),
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	code := a.run(context.Background(), flag.Args())

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(promRegistry, cfg.MetricsTextfile); err != nil {
			log.Errorf("write metrics textfile: %s", err)
		}
	}

	os.Exit(code)
}
