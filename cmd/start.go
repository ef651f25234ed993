package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"id-check/core/config"
	"id-check/core/loader"
	"id-check/core/logger"
	"id-check/core/metrics"
	"id-check/core/middleware/rayid"
	"id-check/core/server"
	"id-check/feature/control"
	"id-check/feature/idcheck"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "id-check/docs/swagger"
)

// @title id-check API
// @version 1.0
// @description Control and lookup API of the request-time identifier filter.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [-path <location>]",
	Short: "Start the id-check server",
	Long: `Loads the identifier list, then serves filtered traffic and the control API.

Arguments are passed to the filter verbatim, host style:
  start -path=/etc/idcheck/ids.txt
  start -path s3://lists/blocked.txt
  start -path=db://blocked_members/member_id

Without -path the IDCHECK_PATH setting is used.`,
	DisableFlagParsing: true,
	RunE:               runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, argv []string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.IDCheck.IsValidMode() {
		return fmt.Errorf("invalid idcheck mode %q", cfg.IDCheck.Mode)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Connect the source backend (only what the location needs)
	deps, closeDeps, err := openDeps(cfg, sourceLocation(cfg, argv), logg)
	if err != nil {
		return fmt.Errorf("failed to prepare source: %w", err)
	}
	defer closeDeps()

	// 4. Initial load. Any failure here is fatal: no lookups without a list.
	plugin, err := idcheck.New(cmd.Context(), argv, cfg.IDCheck, deps, logg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s: %w", idcheck.PluginName, err)
	}

	if err := metrics.WatchLiveHandles(plugin.LiveHandles); err != nil {
		logg.Warn("Failed to register live handle gauge", zap.Error(err))
	}

	// 5. Initialize Fiber App
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			logger.WithRayID(logg, c).Error("Request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return err
	})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	// 6. Load Features
	mgr := loader.NewManager(logg)
	mgr.Register(idcheck.NewFeature(plugin, cfg.Server.ApiKey, logg))
	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	// 7. Everything else is traffic: guard, then forward.
	app.All("/*", idcheck.NewGuard(plugin, cfg.IDCheck, logg), forward(cfg.Server))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Control channel (optional)
	if cfg.Redis.Enabled() {
		client := control.NewClient(cfg.Redis)
		defer client.Close()
		sub := control.NewSubscriber(client, cfg.Redis, plugin, logg)
		go func() {
			if err := sub.Run(ctx); err != nil {
				logg.Error("Control channel stopped", zap.Error(err))
			}
		}()
	}

	// 9. Start Server
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("mode", cfg.IDCheck.Mode))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logg.Info("Shutting down server...")
	cancel()
	_ = app.ShutdownWithTimeout(time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second)
	plugin.OnShutdown()
	return nil
}

// forward proxies accepted traffic upstream, or answers 204 when none is configured.
func forward(cfg server.Config) fiber.Handler {
	upstream := strings.TrimSuffix(cfg.Upstream, "/")
	return func(c *fiber.Ctx) error {
		if !cfg.HasUpstream() {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return proxy.Do(c, upstream+c.OriginalURL())
	}
}
