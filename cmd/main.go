package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manju-lilly/regintel-processbatch/cache"
	"github.com/manju-lilly/regintel-processbatch/pkg/logging"
	"github.com/manju-lilly/regintel-processbatch/pkg/metrics"
	"github.com/manju-lilly/regintel-processbatch/store"
)

// AppName - the name of the application.
const AppName = "paramcache"

// cacheMetrics collects cache counters for the current invocation.
var cacheMetrics = metrics.NewCacheMetrics(metricsNamespace)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:                AppName,
	Short:              "Read-through cache CLI for hierarchical parameters",
	SilenceUsage:       true,
	PersistentPreRunE:  registerBefore,
	PersistentPostRunE: reportAfter,
}

//nolint:lll
func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&globalBackend, "backend", "b", "ssm", `Backend to use
	null: no-op
	ssm: SSM Parameter Store
	file: YAML or JSON document given by --file
`)
	rootCmd.PersistentFlags().IntVarP(&globalNumRetries, "retries", "r", defaultNumRetries,
		"For SSM, the number of retries to make before giving up")
	rootCmd.PersistentFlags().StringVarP(&globalPrefix, "default-prefix", "", pathSeparator,
		"Prefix used when a command is given a bare key")
	rootCmd.PersistentFlags().StringVarP(&globalFile, "file", "", "",
		"For the file backend, the parameters document")
	rootCmd.PersistentFlags().StringVarP(&globalLogLevel, "log-level", "", "warn",
		"Log level (debug, info, warn, error)")
}

func registerBefore(cmd *cobra.Command, args []string) error {
	// Update global flags (if anything changed from other sources).
	updateGlobals()

	logging.SetLevelFromString(globalLogLevel)

	if globalVerbose {
		logging.SetLevel(slog.LevelDebug)
	}

	return nil
}

func reportAfter(cmd *cobra.Command, args []string) error {
	if !globalVerbose {
		return nil
	}

	summary, err := cacheMetrics.Summary()
	if err != nil {
		return fmt.Errorf("failed to gather cache metrics: %w", err)
	}

	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(os.Stderr, "info: %s %g\n", name, summary[name])
	}

	return nil
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cmd, err := rootCmd.ExecuteContextC(ctx); err != nil {
		if strings.Contains(err.Error(), "arg(s)") || strings.Contains(err.Error(), "usage") {
			cmd.Usage() //nolint:errcheck
		}

		stop()
		os.Exit(globalErrorExitStatus)
	}
}

func getParameterStore() (store.Store, error) {
	backend := strings.ToLower(globalBackend)

	var (
		s   store.Store
		err error
	)

	switch backend {
	case "null":
		s = store.NewNullStore()
	case "ssm":
		s, err = store.NewSSMStore(globalNumRetries)
	case "file":
		if globalFile == "" {
			return nil, fmt.Errorf("backend `%s` requires --file", backend)
		}

		s, err = store.NewMemoryStoreFromFile(globalFile)
	default:
		return nil, fmt.Errorf("invalid backend `%s`", backend)
	}

	return s, err
}

func getParameterCache() (*cache.ParameterCache, error) {
	s, err := getParameterStore()
	if err != nil {
		return nil, err
	}

	return cache.New(s,
		cache.WithPrefix(path.Join(pathSeparator, globalPrefix)),
		cache.WithLogger(logging.Logger()),
		cache.WithMetrics(cacheMetrics),
	), nil
}
