// Package cli wires the cobra command tree: serve runs the HTTP query
// server, query executes one tool from the command line, version prints
// build information.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-chinacal/internal/bazi"
	"github.com/tartampluch/go-chinacal/internal/cache"
	"github.com/tartampluch/go-chinacal/internal/clock"
	"github.com/tartampluch/go-chinacal/internal/config"
	"github.com/tartampluch/go-chinacal/internal/holiday"
	"github.com/tartampluch/go-chinacal/internal/i18n"
	"github.com/tartampluch/go-chinacal/internal/lunisolar"
	"github.com/tartampluch/go-chinacal/internal/solarterm"
	"github.com/tartampluch/go-chinacal/internal/tools"
)

// Execute parses the command line and runs the selected command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		debug    bool
		cacheTTL time.Duration
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:          config.BinaryName,
		Short:        config.AppName + ": Chinese calendar, holiday and bazi queries",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(debug)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, config.FlagDebug, false, config.FlagDescDebug)
	cmd.PersistentFlags().DurationVar(&cacheTTL, config.FlagCacheTTL, config.DefaultCacheTTL, config.FlagDescCacheTTL)
	cmd.PersistentFlags().BoolVar(&noCache, config.FlagNoCache, false, config.FlagDescNoCache)

	cmd.AddCommand(newServeCmd(&cacheTTL, &noCache))
	cmd.AddCommand(newQueryCmd(&cacheTTL, &noCache))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// engine bundles everything a command needs after wiring.
type engine struct {
	registry *tools.Registry
	cache    *cache.Cache
	store    *holiday.Store
	holidays *holiday.Resolver
	clock    clock.Clock
}

// buildEngine materializes the immutable tables once and wires the
// components together. Runs per process start; bounded work.
func buildEngine(cacheTTL time.Duration, noCache bool) (*engine, error) {
	clk := clock.Real{}

	table := lunisolar.NewTable()
	converter := lunisolar.NewConverter(table)

	termTable := solarterm.NewTable()
	terms := solarterm.NewResolver(termTable)

	store, err := holiday.NewStore()
	if err != nil {
		return nil, err
	}
	holidays := holiday.NewResolver(store)

	resultCache := cache.New(cacheTTL, clk)
	if noCache {
		resultCache = cache.Disabled()
	}

	registry := tools.NewRegistry(&tools.Engine{
		Converter: converter,
		Terms:     terms,
		Bazi:      bazi.NewCalculator(converter, terms),
		Holidays:  holidays,
		Cache:     resultCache,
		Clock:     clk,
		Trans:     i18n.New(),
	})

	slog.Info(config.MsgTablesLoaded,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyYears, config.MaxYear-config.MinYear+1,
	)

	return &engine{
		registry: registry,
		cache:    resultCache,
		store:    store,
		holidays: holidays,
		clock:    clk,
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				runtime.GOOS,
				runtime.GOARCH,
			)
		},
	}
}

// setupLogging configures the default slog logger, mirroring startup
// capture to a log file in the user cache dir when available.
func setupLogging(debugMode bool) {
	writers := []io.Writer{os.Stderr}

	if logPath, err := logFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))
}

// logFilePath determines the platform-specific cache directory for logs.
func logFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
