package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/chainlib/foundation/chain"
	cllog "github.com/msto63/chainlib/foundation/core/log"
	"github.com/msto63/chainlib/internal/demo"
	"github.com/msto63/chainlib/internal/telemetry"
	"github.com/msto63/chainlib/pkg/core/config"
	"github.com/msto63/chainlib/pkg/core/health"
	"github.com/msto63/chainlib/pkg/core/logging"
	"github.com/msto63/chainlib/pkg/core/version"
)

var (
	cfgFile string
	verbose bool
)

// errReported marks failures whose diagnostic was already printed
var errReported = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:   "chainsh",
	Short: "chainsh - command grammar shell",
	Long: `chainsh hosts a demo command grammar on top of the chain engine.

Commands can be executed one by one, completed, listed, or entered
interactively in a line shell or a terminal UI.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError("chainsh", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $CHAINSH_CONFIG or ./configs/chainsh.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

// host bundles the engine with everything built from the configuration
type host struct {
	cfg     *config.Config
	logger  *cllog.Logger
	engine  *chain.Engine[*demo.Session]
	session *demo.Session
	metrics *chain.Metrics
	server  *telemetry.Server
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newHost loads the configuration and registers the demo grammar. With
// serve set and metrics enabled, the metrics endpoint is started too.
// A nil logOutput logs to stderr.
func newHost(serve bool, logOutput io.Writer) (*host, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logCfg := logging.FromConfig("chainsh", cfg.Log)
	logCfg.Output = logOutput
	logger := logging.Install(logCfg)

	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger

	h := &host{cfg: cfg, logger: logger, session: demo.NewSession()}
	if cfg.Metrics.Enabled {
		h.metrics = chain.NewMetrics(cfg.Metrics.Namespace)
		opts.Metrics = h.metrics
	}

	h.engine, err = chain.New[*demo.Session](opts)
	if err != nil {
		return nil, err
	}
	if err := demo.Register(h.engine); err != nil {
		return nil, err
	}
	logger.Debug("grammar registered", cllog.Fields{"chains": len(h.engine.Chains())})

	if serve && h.metrics != nil {
		checks := health.NewRegistry("chainsh", version.Chainsh)
		checks.Register(health.GrammarCheck("grammar", func() int { return len(h.engine.Chains()) }))
		h.server, err = telemetry.Start(cfg.Metrics, h.metrics, checks, logger)
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *host) close() {
	if h.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.ErrorWithErr("metrics shutdown failed", err)
	}
}
