package cmd

import (
	"fmt"

	"id-check/core/args"
	"id-check/core/config"
	"id-check/core/logger"
	"id-check/core/utils"
	"id-check/feature/idcheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd loads a list once and reports membership of the given identifiers.
var checkCmd = &cobra.Command{
	Use:   "check [-path <location>] <id>...",
	Short: "Check identifiers against a list",
	Long: `Loads the list exactly as the server would and prints, for every identifier,
whether it is a member.

Examples:
  check -path=ids.txt 42 1001
  check -path s3://lists/blocked.txt 7`,
	DisableFlagParsing: true,
	RunE:               runCheck,
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, argv []string) error {
	opts, err := args.Parse(argv)
	if err != nil {
		return err
	}
	if len(opts.Rest) == 0 {
		return fmt.Errorf("no identifiers given")
	}

	ids := make([]uint64, 0, len(opts.Rest))
	for _, raw := range opts.Rest {
		id, ok := utils.ToUint64(raw)
		if !ok {
			return fmt.Errorf("%q is not an unsigned integer", raw)
		}
		ids = append(ids, id)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	deps, closeDeps, err := openDeps(cfg, sourceLocation(cfg, argv), l)
	if err != nil {
		return fmt.Errorf("failed to prepare source: %w", err)
	}
	defer closeDeps()

	plugin, err := idcheck.New(cmd.Context(), argv, cfg.IDCheck, deps, l)
	if err != nil {
		return err
	}
	defer plugin.OnShutdown()

	members := 0
	for _, id := range ids {
		ok := plugin.IsMember(id)
		if ok {
			members++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%t\n", id, ok)
	}

	l.Debug("Check complete", zap.Int("checked", len(ids)), zap.Int("members", members))
	return nil
}
