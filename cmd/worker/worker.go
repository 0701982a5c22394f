package worker

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/avtoelite/storefront/internal/config"
	"github.com/avtoelite/storefront/internal/db"
	"github.com/avtoelite/storefront/internal/kafka"
	"github.com/avtoelite/storefront/internal/logger"
	"github.com/avtoelite/storefront/internal/repository"
	"github.com/avtoelite/storefront/internal/worker"
	"github.com/spf13/cobra"
)

// NewWorkerCmd groups background worker subcommands.
func NewWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background workers",
	}
	cmd.AddCommand(newAnalyticsCmd())
	return cmd
}

func newAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Consume lead events from Kafka into ClickHouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger.Init(cfg.Log.Level)
			defer logger.Sync()

			chDB, err := db.NewClickHouse(cfg.ClickHouse.DSN, db.Opts{
				MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
				MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
				ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
				ConnMaxIdleTime: cfg.ClickHouse.ConnMaxIdleTime,
				PingTimeout:     cfg.ClickHouse.PingTimeout,
			})
			if err != nil {
				return fmt.Errorf("clickhouse connect: %w", err)
			}
			defer func() { _ = chDB.Close() }()

			consumer := kafka.NewConsumer(kafka.Config{
				Brokers:        cfg.Kafka.Brokers,
				Topic:          cfg.Kafka.Topic,
				GroupID:        cfg.Kafka.GroupID,
				MinBytes:       cfg.Kafka.MinBytes,
				MaxBytes:       cfg.Kafka.MaxBytes,
				CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
			})
			defer func() { _ = consumer.Close() }()

			w := worker.NewAnalytics(consumer, repository.NewCHLeadsRepository(chDB))
			if cfg.Analytics.Workers > 0 {
				w.Workers = cfg.Analytics.Workers
			}
			if cfg.Analytics.BatchSize > 0 {
				w.BatchSize = cfg.Analytics.BatchSize
			}
			if cfg.Analytics.BatchWait > 0 {
				w.BatchWait = cfg.Analytics.BatchWait
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx)
		},
	}
}
