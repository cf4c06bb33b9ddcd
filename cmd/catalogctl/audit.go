package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/config"
	"github.com/iliyamo/painting-catalog/internal/queue"
)

func auditConsumerCmd(logger func() *zap.Logger) *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "audit-consumer",
		Short: "Append catalog.record_created events to the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := config.Load().AMQPURL
			if url == "" {
				return errors.New("RABBITMQ_URL or AMQP_URL must be set")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return queue.ConsumeRecordCreated(ctx, url, logPath, logger())
		},
	}
	cmd.Flags().StringVar(&logPath, "log", queue.DefaultLogPath, "Audit log file")
	return cmd
}
