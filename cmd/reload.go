package cmd

import (
	"context"
	"fmt"
	"time"

	"id-check/core/config"
	"id-check/core/logger"
	"id-check/feature/control"
	"id-check/feature/idcheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reloadTag string

// reloadCmd asks every running instance to reload its list.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Ask running instances to reload their list",
	Long: `Publishes a control message on the Redis control channel. Every instance
subscribed to the channel reloads its list in the background; an instance that is
already reloading rejects the request.`,
	RunE: runReload,
}

func init() {
	reloadCmd.Flags().StringVar(&reloadTag, "tag", idcheck.MessagePrefix+idcheck.ReloadCommand, "Control message tag to publish")
	RootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Redis.Enabled() {
		return fmt.Errorf("redis control channel is not configured (REDIS_ADDR)")
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	client := control.NewClient(cfg.Redis)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := control.Publish(ctx, client, cfg.Redis.Channel, reloadTag)
	if err != nil {
		return err
	}
	if n == 0 {
		l.Warn("No instance is listening on the control channel", zap.String("channel", cfg.Redis.Channel))
		return nil
	}
	l.Info("Reload requested", zap.String("tag", reloadTag), zap.Int64("instances", n))
	return nil
}
