package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/cache"
	"github.com/pinchbench/pinchboard/internal/projectconfig"
	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/spinner"
	"github.com/pinchbench/pinchboard/internal/view"
	"github.com/pinchbench/pinchboard/internal/webapi"
)

var version = "dev"

// app carries the state shared by every subcommand once the root
// persistent flags and the project config have been resolved.
type app struct {
	apiURL string
	format string

	cfg    *projectconfig.ProjectConfig
	output reporting.Format
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "pinchboard",
		Short: "Pinchboard - PinchBench leaderboard in the terminal",
		Long: `Pinchboard reads the PinchBench leaderboard API and presents it in the
terminal or as a local JSON API.

It ranks models, lists individual runs, shows per-task results for a
submission and computes the chart data behind the leaderboard graphs.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "PinchBench API base URL (overrides config and "+projectconfig.EnvAPIURL+")")
	cmd.PersistentFlags().StringVar(&a.format, "format", string(reporting.FormatTable), "Output format: table, json or markdown")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		return a.init()
	}

	// Add subcommands
	cmd.AddCommand(newLeaderboardCommand(a))
	cmd.AddCommand(newVersionsCommand(a))
	cmd.AddCommand(newSubmissionCommand(a))
	cmd.AddCommand(newRunsCommand(a))
	cmd.AddCommand(newGraphsCommand(a))
	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newCacheCommand(a))

	return cmd
}

func (a *app) init() error {
	format, err := reporting.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.output = format

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	a.cfg = cfg
	a.logger = slog.Default()
	return nil
}

// openService builds the API client and cache from config. The returned
// function closes the cache.
func (a *app) openService() (*webapi.LeaderboardService, func(), error) {
	store, err := cache.Open(cache.Driver(a.cfg.Cache.Driver), a.cfg.CacheDir())
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	client := api.NewClient(a.cfg.API.BaseURL,
		api.WithTimeout(time.Duration(a.cfg.API.Timeout)*time.Second),
		api.WithLogger(a.logger),
		api.WithStrict(a.cfg.StrictAPI()),
	)
	svc := webapi.NewLeaderboardService(client, webapi.ServiceConfig{
		Cache:     store,
		BatchSize: a.cfg.API.BatchSize,
		RunsLimit: a.cfg.Defaults.Limit,
		Logger:    a.logger,
	})

	closeStore := func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("closing cache", "error", err)
		}
	}
	return svc, closeStore, nil
}

// render writes t (or v for JSON) to the command's output.
func (a *app) render(cmd *cobra.Command, t reporting.Table, v any) error {
	return reporting.Render(cmd.OutOrStdout(), a.output, t, v)
}

// tableOutput reports whether human-oriented extras such as footers and
// prompts belong in the output.
func (a *app) tableOutput() bool {
	return a.output == reporting.FormatTable
}

// stateFlags are the leaderboard page state flags shared by leaderboard and
// graphs.
type stateFlags struct {
	view     string
	score    string
	provider string
	version  string
}

func (f *stateFlags) bind(cmd *cobra.Command, persistent, withView bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	if withView {
		fs.StringVar(&f.view, "view", string(view.DefaultMode), "View: success, speed or cost")
	}
	fs.StringVar(&f.score, "score", "", "Score mode: best or average (default from config)")
	fs.StringVar(&f.provider, "provider", "", "Only show models from this provider")
	fs.StringVar(&f.version, "version", "", "Benchmark version (default from config, else current)")
}

// state resolves flags against config defaults. Unknown view or score values
// are usage errors.
func (a *app) state(f stateFlags) (view.State, error) {
	st := view.DefaultState()

	if f.view != "" {
		st.View = view.ParseMode(f.view)
		if string(st.View) != f.view || st.View == view.ModeGraphs {
			return st, fmt.Errorf("unsupported view %q (want success, speed or cost)", f.view)
		}
	}

	score := f.score
	if score == "" {
		score = a.cfg.Defaults.ScoreMode
	}
	st.Score = view.ParseScoreMode(score)
	if string(st.Score) != score {
		return st, fmt.Errorf("unsupported score mode %q (want best or average)", score)
	}

	st.Provider = f.provider
	st.Version = f.version
	if st.Version == "" {
		st.Version = a.cfg.Defaults.Version
	}
	return st, nil
}

// withSpinner runs fn while a spinner with msg is shown on a terminal stderr.
func withSpinner[T any](msg string, fn func() (T, error)) (T, error) {
	stop := spinner.StartIfTerminal(os.Stderr, msg)
	defer stop()
	return fn()
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
