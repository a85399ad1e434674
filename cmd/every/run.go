package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reugn/go-every/config"
	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/logger"
)

var runConfigPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the schedules declared in a config file",
	Long: `Run every schedule declared in a YAML config file until interrupted.
Each firing is logged and runs the command or request the schedule declares.

Examples:
  every run --config schedules.yaml`,
	RunE: runSchedules,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "schedules.yaml", "Path to the config file")
}

// setupLogger configures a zerolog console logger at the given level.
func setupLogger(level logger.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.000"}
	return zerolog.New(writer).With().Timestamp().Logger().Level(logger.ZerologLevel(level))
}

func runSchedules(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}
	log := setupLogger(cfg.Level())
	engineLogger := logger.NewZerologLogger(log)

	entries, err := cfg.Build(every.WithLogger(engineLogger))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no schedules declared in %s", runConfigPath)
	}

	group := every.NewGroup(engineLogger)
	for i, entry := range entries {
		name := entry.Name
		run, err := cfg.Schedules[i].Action(engineLogger)
		if err != nil {
			return err
		}
		entry.Schedule.Do(func(ctx context.Context, fireTime time.Time) {
			log.Info().Str("schedule", name).Time("fire_time", fireTime).
				Dur("lag", time.Since(fireTime)).Msg("fired")
			if run != nil {
				run(ctx, fireTime)
			}
		})
		if err := group.Add(name, entry.Schedule); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := group.Start(ctx); err != nil {
		log.Error().Err(err).Msg("some schedules failed to start")
	}
	for _, name := range group.Names() {
		schedule, err := group.Get(name)
		if err != nil {
			continue
		}
		log.Info().Str("schedule", name).Str("trigger", schedule.Description()).
			Time("next", schedule.NextFireTime()).Msg("scheduled")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
	group.Stop()
	return nil
}
